package webhook

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopic(t *testing.T) {
	tests := []struct {
		topic   string
		kind    Kind
		action  string
		wantErr bool
	}{
		{"ContentManagement.Entry.auto_save", KindEntry, "auto_save", false},
		{"ContentManagement.Entry.save", KindEntry, "save", false},
		{"ContentManagement.Entry.publish", KindEntry, "publish", false},
		{"ContentManagement.Asset.save", KindAsset, "save", false},
		{"ContentManagement.ContentType.save", KindContentType, "save", false},
		{"ContentManagement.Environment.save", KindUnknown, "save", false},
		{"junk", KindUnknown, "", true},
		{"", KindUnknown, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			kind, action, err := ParseTopic(tt.topic)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestParseRequest(t *testing.T) {
	body := []byte(`{
		"sys": {
			"id": "foo",
			"space": {"sys": {"id": "space_foo"}},
			"contentType": {"sys": {"id": "post"}}
		},
		"fields": {
			"title": "Hello",
			"reviewer_field": {"en-US": "Needs further editing"}
		}
	}`)

	header := http.Header{}
	header.Set(TopicHeader, "ContentManagement.Entry.auto_save")

	ev, err := ParseRequest(header, body)
	require.NoError(t, err)

	assert.Equal(t, KindEntry, ev.Kind)
	assert.Equal(t, "auto_save", ev.Action)
	assert.Equal(t, "space_foo", ev.SpaceID)
	assert.Equal(t, "foo", ev.EntryID)
	assert.Equal(t, "post", ev.ContentTypeID)

	title, ok := ev.Fields["title"].Value()
	require.True(t, ok)
	assert.Equal(t, "Hello", title)

	reviewer, ok := ev.Fields["reviewer_field"].Value()
	require.True(t, ok)
	assert.Equal(t, "Needs further editing", reviewer)
}

func TestParseRequestErrors(t *testing.T) {
	t.Run("missing topic header", func(t *testing.T) {
		_, err := ParseRequest(http.Header{}, []byte(`{}`))
		require.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		header := http.Header{}
		header.Set(TopicHeader, "ContentManagement.Entry.save")
		_, err := ParseRequest(header, []byte(`{not json`))
		require.Error(t, err)
	})
}

func TestFieldValueNormalization(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"scalar string", `"Ready for review"`, "Ready for review", true},
		{"locale map single", `{"en-US": "Ready for review"}`, "Ready for review", true},
		{"locale map keeps document order", `{"de-DE": "x", "en-US": "y"}`, "x", true},
		{"empty locale map", `{}`, "", false},
		{"null", `null`, "", false},
		{"number keeps its text", `42`, "42", true},
		{"bool keeps its text", `true`, "true", true},
		{"structured locale value keeps its text", `{"en-US": {"sys": {"id": "ref"}}}`, `{"sys": {"id": "ref"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FieldValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			got, ok := f.Value()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("absent field has no value", func(t *testing.T) {
		fields := map[string]FieldValue{}
		_, ok := fields["missing"].Value()
		assert.False(t, ok)
	})
}

func TestEntryURLRoundTrip(t *testing.T) {
	url := EntryURL("space_foo", "foo")
	assert.Equal(t, "https://app.contentful.com/spaces/space_foo/entries/foo", url)

	// The URL embedded in a body must be recoverable by pattern matching.
	body := "Please review: " + url
	re := regexp.MustCompile(`https://app\.contentful\.com/spaces/([^/]+)/entries/(\S+)`)
	m := re.FindStringSubmatch(body)
	require.Len(t, m, 3)
	assert.Equal(t, "space_foo", m[1])
	assert.Equal(t, "foo", m[2])
}
