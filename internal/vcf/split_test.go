package vcf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func TestSplit(t *testing.T) {
	doc := "junk before\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nN:One;;;;\r\nEND:VCARD\r\n" +
		"\r\n" +
		"begin:vcard\r\nVERSION:3.0\r\nN:Two;;;;\r\nNOTE:folded\r\n  text\r\nend:vcard\r\n"

	cards := vcf.Split(doc)

	require.Len(t, cards, 2)
	assert.Equal(t, "BEGIN:VCARD\r\nVERSION:4.0\r\nN:One;;;;\r\nEND:VCARD\r\n", cards[0])
	assert.Equal(t, "One", vcf.Parse(cards[0]).LastName)
	two := vcf.Parse(cards[1])
	assert.Equal(t, "Two", two.LastName)
	assert.Equal(t, "folded text", two.Note)
}

func TestSplit_Unterminated(t *testing.T) {
	doc := "BEGIN:VCARD\nN:One;;;;\nBEGIN:VCARD\nN:Two;;;;\n"

	cards := vcf.Split(doc)

	require.Len(t, cards, 2)
	assert.Equal(t, "One", vcf.Parse(cards[0]).LastName)
	assert.Equal(t, "Two", vcf.Parse(cards[1]).LastName)
}

func TestSplit_NoCards(t *testing.T) {
	assert.Empty(t, vcf.Split(""))
	assert.Empty(t, vcf.Split("N:Doe;John;;;\r\n"))
}
