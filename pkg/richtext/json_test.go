package richtext_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/richtext"
)

func TestValueJSONRoundTrip(t *testing.T) {
	t.Parallel()

	link := richtext.NewFormat("core/link", map[string]string{"url": "https://x.test"})
	v := richtext.ApplyFormatAt(formatted("abcd", bold, 0, 3), link, 1, 2)
	v = richtext.InsertObjectAt(v, richtext.NewFormat("core/image", map[string]string{"url": "i.png"}), 4, 4)
	v = richtext.Concat(v, listValue([]string{"", "x", "y"}, []*richtext.Format{ulist}, []*richtext.Format{ulist}))

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded richtext.Value
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(v, &decoded, contentOnly); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, decoded.Formats[0][0], decoded.Formats[2][0], "bold run shares one format")
	assert.Same(t, decoded.Replacements[5].Lists[0], decoded.Replacements[7].Lists[0], "sibling lines share one list")
}

func TestValueJSONNullSlots(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(formatted("ab", bold, 0, 1))
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.Contains(s, `"formats":[[{"type":"core/bold"}],null]`), s)
	assert.True(t, strings.Contains(s, `"replacements":[null,null]`), s)
}

func TestValueJSONRejectsInvalid(t *testing.T) {
	t.Parallel()

	var v richtext.Value
	err := json.Unmarshal([]byte(`{"text":"ab","formats":[null],"start":0,"end":0}`), &v)
	require.ErrorIs(t, err, richtext.ErrMismatchedLengths)

	err = json.Unmarshal([]byte(`{"text":"ab","start":0,"end":5}`), &v)
	require.ErrorIs(t, err, richtext.ErrSelectionOutOfRange)

	err = json.Unmarshal([]byte(`{"text":"a","formats":[[null]]}`), &v)
	require.ErrorIs(t, err, richtext.ErrNilFormat)

	err = json.Unmarshal([]byte(`{"text":"a b","replacements":[null,{"lists":[null]},null]}`), &v)
	require.ErrorIs(t, err, richtext.ErrNilFormat)

	err = json.Unmarshal([]byte(`{"text":"a","formats":[[{"type":"x onmouseover=alert(1) y"}]]}`), &v)
	require.ErrorIs(t, err, richtext.ErrInvalidFormatType)
}
