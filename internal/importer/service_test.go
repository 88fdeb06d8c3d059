package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
)

const file = `date;description;amount;category
2025-10-03;UBER TRIP;-8.40;
2025-10-04;Dinner;-30.00;Food
2025-10-05;Unknown shop;-5.00;
`

func TestService_Import(t *testing.T) {
	type testCase struct {
		name      string
		profile   importer.Profile
		input     string
		setupMock func(m *importer.MockSuggester)
		want      []category.Category
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "FillsMissingCategories",
			profile: importer.ProfileSpendwise,
			input:   file,
			setupMock: func(m *importer.MockSuggester) {
				m.EXPECT().Suggest(gomock.Any(), "UBER TRIP").Return(category.Transportation, nil)
				m.EXPECT().Suggest(gomock.Any(), "Unknown shop").Return(category.Unset, nil)
			},
			want: []category.Category{category.Transportation, category.Food, category.Other},
		},
		{
			name:    "SuggestionErrorFallsBackToOther",
			profile: importer.ProfileSpendwise,
			input:   file,
			setupMock: func(m *importer.MockSuggester) {
				m.EXPECT().Suggest(gomock.Any(), gomock.Any()).Return(category.Unset, errors.New("db down")).Times(2)
			},
			want: []category.Category{category.Other, category.Food, category.Other},
		},
		{
			name:      "UnknownProfile",
			profile:   "ing",
			input:     file,
			setupMock: func(m *importer.MockSuggester) {},
			wantErr:   importer.ErrUnknownProfile,
		},
		{
			name:      "ParseError",
			profile:   importer.ProfileCGD,
			input:     file,
			setupMock: func(m *importer.MockSuggester) {},
			wantErr:   importer.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rules := importer.NewMockSuggester(ctrl)
			tt.setupMock(rules)

			got, err := importer.NewService(rules).Import(context.Background(), tt.profile, strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i, c := range tt.want {
				assert.Equal(t, c, got[i].Category)
			}
		})
	}
}

func TestService_Import_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", 120)
	input := "date;description;amount;category\n2025-10-03;" + long + ";-1.00;Other\n"

	got, err := importer.NewService(nil).Import(context.Background(), importer.ProfileSpendwise, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, strings.Repeat("é", 100), got[0].Description)
}
