package cgd_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/spendwise/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		want    []transaction.CreateParams
		wantErr error
	}

	tests := []testCase{
		{
			name: "Conta",
			csv: `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JANE ROE

Dados da consulta
Intervalo de;01-01-2026 a 31-01-2026

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;PINGO DOCE;-58,74;4.825,46
09-01-2026;09-01-2026;ORDENADO;1.608,52;4.884,20
`,
			want: []transaction.CreateParams{
				{Amount: -5874, Description: "PINGO DOCE", Date: date(2026, 1, 30)},
				{Amount: 160852, Description: "ORDENADO", Date: date(2026, 1, 9)},
			},
		},
		{
			name: "Extrato",
			csv: `Consultar extrato - 15-02-2026 : 0000
Saldo contabilístico final ;1.393,66

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";EDP COMERCIAL ;-60,13;  ;1.393,66;
04-02-2026;04-02-2026;SIBS ;REEMBOLSO ;43,06;  ;1.453,79;
`,
			want: []transaction.CreateParams{
				{Amount: -6013, Description: "EDP COMERCIAL", Date: date(2026, 2, 13)},
				{Amount: 4306, Description: "REEMBOLSO", Date: date(2026, 2, 4)},
			},
		},
		{
			name: "CartaoDebitAndCredit",
			csv: `Consultar saldos e movimentos de cartões - 15-02-2026

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;CP COMBOIOS   LISBOA ;2,35 ; ;
31-12-2025 ;29-12-2025 ;REFUND STORE ; ;25,00 ;
 ; ; ; ;Página 1/2 ;
`,
			want: []transaction.CreateParams{
				{Amount: -235, Description: "CP COMBOIOS   LISBOA", Date: date(2025, 12, 16)},
				{Amount: 2500, Description: "REFUND STORE", Date: date(2025, 12, 31)},
			},
		},
		{
			name: "DifferentColumnOrder",
			csv: `Random;MetaData
Montante;Descrição;Data mov.;Ignored
-10,00;TEST_ORDER;30-01-2026;XXX
`,
			want: []transaction.CreateParams{
				{Amount: -1000, Description: "TEST_ORDER", Date: date(2026, 1, 30)},
			},
		},
		{
			name: "LargeAmount",
			csv:  "Data mov.;Descrição;Montante\n30-01-2026;BIG TRANSFER;-1.234.567,89\n",
			want: []transaction.CreateParams{
				{Amount: -123456789, Description: "BIG TRANSFER", Date: date(2026, 1, 30)},
			},
		},
		{
			name: "SkipsFooterAndZeroRows",
			csv:  "Data mov.;Descrição;Montante\n30-01-2026;TEST;-10,00\n31-01-2026;NOOP;0,00\nTotais;;;;\n",
			want: []transaction.CreateParams{
				{Amount: -1000, Description: "TEST", Date: date(2026, 1, 30)},
			},
		},
		{
			name: "HeaderOnly",
			csv:  "Data mov.;Data-valor;Descrição;Montante",
		},
		{
			name:    "Empty",
			csv:     "",
			wantErr: cgd.ErrUnknownLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cgd.NewParser().Parse(strings.NewReader(tt.csv))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_MissingDescription(t *testing.T) {
	_, err := cgd.NewParser().Parse(strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: missing description")
}

func TestParser_Latin1Encoding(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"))
	require.NoError(t, err)

	got, err := cgd.NewParser().Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CAFÉ CENTRAL", got[0].Description)
}
