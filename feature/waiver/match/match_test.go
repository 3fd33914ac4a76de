package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Classification(t *testing.T) {
	candidates := map[string][]byte{
		"1001_Alice_KCS Records Consent_a.pdf": []byte("a"),
		"1002_Bob_KCS Records Consent_b.pdf":   []byte("b"),
		"1002_Bob_KCS Records Consent_b2.pdf":  []byte("b2"),
	}
	ids := []string{"1001", "1002", "1003"}

	res := Match(candidates, ids)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, "1001", res.Matched[0].ID)
	assert.Equal(t, "1001_Alice_KCS Records Consent_a.pdf", res.Matched[0].Name)
	assert.Equal(t, []byte("a"), res.Matched[0].Data)

	assert.Equal(t, []string{"1003"}, res.Missing)

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, "1002", res.Duplicates[0].ID)
	assert.Equal(t, []string{
		"1002_Bob_KCS Records Consent_b.pdf",
		"1002_Bob_KCS Records Consent_b2.pdf",
	}, res.Duplicates[0].Names)

	// Buckets partition the identifier set.
	assert.Equal(t, len(ids), len(res.Matched)+len(res.Missing)+len(res.Duplicates))
}

func TestMatch_PrefixIsExact(t *testing.T) {
	candidates := map[string][]byte{
		"123_x.pdf": []byte("x"),
	}

	res := Match(candidates, []string{"12"})

	// "12" must not claim "123_x.pdf".
	assert.Empty(t, res.Matched)
	assert.Equal(t, []string{"12"}, res.Missing)
	assert.Equal(t, []string{"123_x.pdf"}, res.Orphans)
}

func TestMatch_EmptyPool(t *testing.T) {
	res := Match(nil, []string{"1", "2", "3"})

	assert.Equal(t, []string{"1", "2", "3"}, res.Missing)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Duplicates)
	assert.Empty(t, res.Orphans)
}

func TestMatch_OrderPreserved(t *testing.T) {
	candidates := map[string][]byte{
		"3_c.pdf": nil,
		"1_a.pdf": nil,
		"2_b.pdf": nil,
	}
	ids := []string{"3", "1", "2"}

	res := Match(candidates, ids)

	require.Len(t, res.Matched, 3)
	assert.Equal(t, "3", res.Matched[0].ID)
	assert.Equal(t, "1", res.Matched[1].ID)
	assert.Equal(t, "2", res.Matched[2].ID)
}

func TestMatch_Orphans(t *testing.T) {
	candidates := map[string][]byte{
		"1_a.pdf":      nil,
		"999_late.pdf": nil,
		"notes.txt":    nil,
	}

	res := Match(candidates, []string{"1"})

	assert.Len(t, res.Matched, 1)
	assert.Equal(t, []string{"999_late.pdf", "notes.txt"}, res.Orphans)
}

func TestValidateFilenames(t *testing.T) {
	names := []string{
		"1001_Alice Smith_KCS Records Consent_scan_20240101.pdf",
		"1002_Bob_KCS Records Consent_form.pdf",
		"1003-bad-name.pdf",
		"readme.txt",
	}

	valid, invalid := ValidateFilenames(names, nil)

	assert.Len(t, valid, 2)
	assert.Equal(t, []string{"1003-bad-name.pdf", "readme.txt"}, invalid)
}
