package properties

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProps(t *testing.T, content string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "model.props", []byte(content), 0666))

	return fs
}

func TestLoad(t *testing.T) {
	fs := writeProps(t, `
// reachability of the bad state
"safety": P<0.4 [F "bad"] // keep under 40%

P=? [F "one"]; R=? [F "one"]
`)

	r, err := Load(fs, "model.props")
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 3)

	assert.Equal(t, "safety", all[0].Name)
	assert.Equal(t, `P<0.4 [F "bad"]`, all[0].Formula.String())

	assert.Empty(t, all[1].Name)
	assert.Equal(t, `P=? [F "one"]`, all[1].Formula.String())

	// The reward formula comes back in canonical form.
	assert.Equal(t, `R[exp]=? [F "one"]`, all[2].Formula.String())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "parse error carries file and line",
			content: "P=? [F \"one\"]\nP=? [F",
			wantErr: "model.props:2:",
		},
		{
			name:    "unterminated name",
			content: `"safety`,
			wantErr: "unterminated property name",
		},
		{
			name:    "name without colon",
			content: `"safety" P=? [F "one"]`,
			wantErr: "expected ':' after property name 'safety'",
		},
		{
			name:    "name without formula",
			content: `"safety":`,
			wantErr: "property name 'safety' has no formula",
		},
		{
			name:    "duplicate names",
			content: "\"safety\": P=? [F \"one\"]\n\"safety\": P=? [F \"two\"]",
			wantErr: "property with name 'safety' already exists",
		},
		{
			name:    "named line with two formulas",
			content: `"safety": P=? [F "one"]; P=? [F "two"]`,
			wantErr: "a named line must contain exactly one property",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeProps(t, tt.content)

			_, err := Load(fs, "model.props")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	fs := writeProps(t, `
"safety": P<0.4 [F "bad"]
R=? [F "done"]
`)

	r, err := Load(fs, "model.props")
	require.NoError(t, err)

	require.NoError(t, Save(fs, "canonical.props", r))

	blob, err := util.ReadFile(fs, "canonical.props")
	require.NoError(t, err)

	want := "\"safety\": P<0.4 [F \"bad\"]\nR[exp]=? [F \"done\"]\n"
	assert.Equal(t, want, string(blob))

	// The canonical file loads back to the same registry.
	again, err := Load(fs, "canonical.props")
	require.NoError(t, err)
	require.Len(t, again.All(), 2)
	assert.Equal(t, `P<0.4 [F "bad"]`, again.Get("safety").Formula.String())
}

func Test_stripComment(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`P=? [F "one"] // note`, `P=? [F "one"] `},
		{`// whole line`, ``},
		{`P=? [F "a//b"]`, `P=? [F "a//b"]`},
		{`P=? [F "one"]`, `P=? [F "one"]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.line))
	}
}

func Test_splitName(t *testing.T) {
	name, rest, err := splitName(`"safety": P<0.4 [F "bad"]`)
	require.NoError(t, err)
	assert.Equal(t, "safety", name)
	assert.Equal(t, `P<0.4 [F "bad"]`, rest)

	name, rest, err = splitName(`P<0.4 [F "bad"]`)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, `P<0.4 [F "bad"]`, rest)
}
