package utils

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// GenerateCertificatePDF builds a single-page completion certificate. The
// layout is fixed: title, student name, course title, issue date. Anything
// fancier belongs to an external document service.
func GenerateCertificatePDF(studentName, courseTitle string, issuedAt time.Time) ([]byte, error) {
	if studentName == "" || courseTitle == "" {
		return nil, fmt.Errorf("student name and course title are required")
	}

	content := buildContentStream(studentName, courseTitle, issuedAt)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 5)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 792 612] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	writeObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content))

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart))

	return buf.Bytes(), nil
}

func buildContentStream(studentName, courseTitle string, issuedAt time.Time) string {
	var sb strings.Builder
	line := func(size int, y int, text string) {
		sb.WriteString(fmt.Sprintf("BT /F1 %d Tf 72 %d Td (%s) Tj ET\n", size, y, escapePDFText(text)))
	}

	line(36, 480, "Certificate of Completion")
	line(14, 420, "This is to certify that")
	line(28, 380, studentName)
	line(14, 340, "has successfully completed the course")
	line(24, 300, courseTitle)
	line(12, 240, "Completed on: "+issuedAt.Format("January 2, 2006"))
	line(10, 100, "Issued by EduVillage - Online Learning Platform")
	return sb.String()
}

// escapePDFText escapes the characters that terminate a PDF literal string.
func escapePDFText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
