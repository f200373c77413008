package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextGermanFixture(t *testing.T) {
	raw := "Am 3. Mai schrieb Anna:\n> Hallo\n\n\n\nTschüss"
	assert.Equal(t, "Tschüss", CleanText(raw))
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "english preamble and quotes",
			in:   "Sounds good, see you then.\n\nOn Mon, 6 May 2024 at 10:00, Bob <bob@example.com> wrote:\n> Can we meet?\n> Thanks",
			want: "Sounds good, see you then.",
		},
		{
			name: "forwarded banner",
			in:   "FYI\n---------- Forwarded message ---------\nFrom: Carol",
			want: "FYI\n\nFrom: Carol",
		},
		{
			name: "german forwarded banner",
			in:   "Zur Info\n---------- Weitergeleitete Nachricht ----------\nVon: Dora",
			want: "Zur Info\n\nVon: Dora",
		},
		{
			name: "french preamble",
			in:   "Merci !\nLe lun. 6 mai 2024 à 10:00, Eve <eve@example.com> a écrit :\n> Bonjour",
			want: "Merci !",
		},
		{
			name: "blank run collapsed to one blank line",
			in:   "Hi\n\n\n\n\nBye",
			want: "Hi\n\nBye",
		},
		{
			name: "crlf and trailing spaces",
			in:   "Hi   \r\n\r\n\r\n\r\nBye\t",
			want: "Hi\n\nBye",
		},
		{
			name: "body line mentioning wrote kept",
			in:   "On Monday I wrote the plan: see below\nThanks",
			want: "On Monday I wrote the plan: see below\nThanks",
		},
		{
			name: "preamble with colon in time",
			in:   "Ok\nOn Tue, 7 May 2024 at 09:30, Bob wrote:\n> earlier",
			want: "Ok",
		},
		{
			name: "only quotes",
			in:   "> a\n> b",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"Am 3. Mai schrieb Anna:\n> Hallo\n\n\n\nTschüss",
		"Hi\n\n\n\nOn Tue, Bob wrote:\nAm 2. Mai schrieb Carl:\n> nested\n\nEnd",
		"   leading\n\n\n---- Forwarded message ----\n>x\n\n\n\ny   ",
		"Il giorno lun 6 mag 2024 Franco ha scritto:\n\n\n\n> ciao\nGrazie",
		"",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "input %q", in)
	}
}

func TestParseAccountEmail(t *testing.T) {
	assert.Equal(t, "me@example.com", ParseAccountEmail("Google Account: Me Myself (me@example.com)"))
	assert.Equal(t, "", ParseAccountEmail("Google Account"))
}
