package utils

import "time"

// TimestampSuffix gera o sufixo usado nos nomes de arquivo, ex: 2024-12-18_143052
func TimestampSuffix(t time.Time) string {
	return t.Format("2006-01-02_150405")
}
