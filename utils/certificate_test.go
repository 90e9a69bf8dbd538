package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCertificatePDF(t *testing.T) {
	issued := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	data, err := GenerateCertificatePDF("Asha Rao", "Algebra Basics", issued)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	doc := string(data)
	require.True(t, strings.HasPrefix(doc, "%PDF-1.4"))
	require.True(t, strings.HasSuffix(doc, "%%EOF\n"))
	require.Contains(t, doc, "Asha Rao")
	require.Contains(t, doc, "Algebra Basics")
	require.Contains(t, doc, "March 15, 2026")
}

func TestGenerateCertificatePDFRequiresFields(t *testing.T) {
	_, err := GenerateCertificatePDF("", "Algebra", time.Now())
	require.Error(t, err)

	_, err = GenerateCertificatePDF("Asha", "", time.Now())
	require.Error(t, err)
}

func TestGenerateCertificatePDFEscapesDelimiters(t *testing.T) {
	data, err := GenerateCertificatePDF("Asha (Rao)", `C\ Programming`, time.Now())
	require.NoError(t, err)

	doc := string(data)
	require.Contains(t, doc, `Asha \(Rao\)`)
	require.Contains(t, doc, `C\\ Programming`)
}
