package vcf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func TestValidate_GeneratedDocuments(t *testing.T) {
	for _, v := range vcf.Versions {
		t.Run(string(v), func(t *testing.T) {
			assert.NoError(t, vcf.Validate(newTestGenerator().Generate(fullRecord(), v)))
			assert.NoError(t, vcf.Validate(newTestGenerator().Generate(vcf.NewRecord(), v)))
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Not a card", "hello world"},
		{"Missing version", "BEGIN:VCARD\r\nFN:A\r\nN:A;;;;\r\nEND:VCARD\r\n"},
		{"Unknown version", "BEGIN:VCARD\r\nVERSION:5.0\r\nFN:A\r\nEND:VCARD\r\n"},
		{"4.0 without FN", "BEGIN:VCARD\r\nVERSION:4.0\r\nN:Doe;John;;;\r\nEND:VCARD\r\n"},
		{"3.0 without N", "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:John Doe\r\nEND:VCARD\r\n"},
		{"2.1 without N", "BEGIN:VCARD\r\nVERSION:2.1\r\nFN:John Doe\r\nEND:VCARD\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, vcf.Validate(tt.doc), vcf.ErrMalformed)
		})
	}
}

func TestValidate_VersionRequirements(t *testing.T) {
	assert.NoError(t, vcf.Validate("BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nEND:VCARD\r\n"), "4.0 does not need N")
	assert.NoError(t, vcf.Validate("BEGIN:VCARD\r\nVERSION:2.1\r\nN:Doe;John\r\nEND:VCARD\r\n"), "2.1 does not need FN")
}
