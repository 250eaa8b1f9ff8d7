package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `"2024-03-01T10:20:30Z"`, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), false},
		{"legacy naive", `"2024-03-01T10:20:30.123456"`, time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.Local), false},
		{"legacy without fraction", `"2024-03-01T10:20:30"`, time.Date(2024, 3, 1, 10, 20, 30, 0, time.Local), false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"not a string", `42`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestamp_MarshalRFC3339(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 1, 10, 20, 30, 500, time.UTC))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T10:20:30.0000005Z"`, string(b))
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"English", English},
		{"spanish", Spanish},
		{"  FRENCH ", French},
		{"en", English},
		{"es", Spanish},
		{"fr-CA", French},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "German", "de", "xx-yy-zz-!"} {
		_, err := ParseLanguage(bad)
		assert.ErrorIs(t, err, common.ErrUnsupportedLanguage, bad)
	}
}

func TestLanguage_Helpers(t *testing.T) {
	assert.True(t, Spanish.Valid())
	assert.False(t, Language("Klingon").Valid())
	assert.Equal(t, language.French, French.Tag())
	assert.Equal(t, language.Und, Language("Klingon").Tag())
	assert.Equal(t, "Responde en español", Spanish.Instruction())
	assert.Equal(t, "Respond in English", Language("Klingon").Instruction())

	langs := Languages()
	assert.Equal(t, []Language{English, Spanish, French}, langs)
	langs[0] = "mutated"
	assert.Equal(t, English, Languages()[0])
}

func TestUsers_DecodeLegacyAndNormalize(t *testing.T) {
	raw := `{
		"alice": {"user_id": "u1", "password": "pw", "created_at": "2024-01-02T03:04:05.000001", "preferred_language": "French"},
		"bob":   {"user_id": "u2", "credential": "secret", "created_at": "2024-01-02T03:04:05Z", "preferred_language": "English"}
	}`
	var users Users
	require.NoError(t, json.Unmarshal([]byte(raw), &users))
	require.NoError(t, users.Normalize())

	assert.Equal(t, "alice", users["alice"].UserName)
	assert.Equal(t, "pw", users["alice"].Credential)
	assert.Equal(t, French, users["alice"].PreferredLanguage)
	assert.Equal(t, "secret", users["bob"].Credential)

	u, ok := users.ByID("u2")
	require.True(t, ok)
	assert.Equal(t, "bob", u.UserName)
	_, ok = users.ByID("nope")
	assert.False(t, ok)

	out, err := json.Marshal(users["alice"])
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password")
	assert.Contains(t, string(out), `"credential":"pw"`)
}

func TestUsers_NormalizeRejectsBrokenRecords(t *testing.T) {
	var nilUsers Users
	require.NoError(t, nilUsers.Normalize())
	assert.NotNil(t, nilUsers)

	broken := Users{"alice": nil}
	assert.Error(t, broken.Normalize())

	noID := Users{"bob": &User{}}
	assert.Error(t, noID.Normalize())
}

func TestDocuments_NormalizeAndOrder(t *testing.T) {
	raw := `{
		"u1": {
			"b.txt": {"version": 2, "text": "B", "uploaded_at": "2024-01-01T00:00:00Z", "seq": 2},
			"a.txt": {"version": 1, "text": "A", "uploaded_at": "2024-01-02T00:00:00Z", "seq": 1},
			"c.txt": {"version": 1, "text": "C", "uploaded_at": "2024-01-03T00:00:00Z", "seq": 3}
		},
		"u2": null
	}`
	var docs Documents
	require.NoError(t, json.Unmarshal([]byte(raw), &docs))
	require.NoError(t, docs.Normalize())

	var names []string
	for _, d := range docs.Owned("u1") {
		assert.Equal(t, "u1", d.Owner)
		names = append(names, d.Name)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt", "c.txt"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 4, docs.NextSeq("u1"))
	assert.Equal(t, 1, docs.NextSeq("u2"))
	assert.Empty(t, docs.Owned("u2"))
	assert.Empty(t, docs.Owned("nobody"))
}

func TestDocuments_OwnedFallsBackToUploadTime(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := Documents{"u1": {
		"late":  {Name: "late", UploadedAt: NewTimestamp(t0.Add(time.Hour))},
		"early": {Name: "early", UploadedAt: NewTimestamp(t0)},
		"same":  {Name: "same", UploadedAt: NewTimestamp(t0)},
	}}

	got := docs.Owned("u1")
	require.Len(t, got, 3)
	assert.Equal(t, "early", got[0].Name)
	assert.Equal(t, "same", got[1].Name)
	assert.Equal(t, "late", got[2].Name)
}

func TestDocuments_NormalizeRejectsBrokenRecords(t *testing.T) {
	assert.Error(t, (&Documents{"u1": {"a": nil}}).Normalize())
	assert.Error(t, (&Documents{"u1": {"a": {Version: 0}}}).Normalize())
}

func TestInteractions_Normalize(t *testing.T) {
	var log Interactions
	require.NoError(t, json.Unmarshal([]byte(`null`), &log))
	require.NoError(t, log.Normalize())
	assert.NotNil(t, log)
	assert.Empty(t, log)
}
