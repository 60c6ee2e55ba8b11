package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		// check is called with the parsed repository
		check func(t *testing.T, r Repository)
	}{
		{
			name: "predefined",
			line: "maven-central",
			check: func(t *testing.T, r Repository) {
				b := r.(*Builtin)
				assert.Equal(t, MavenCentral, b.Predefined())
				assert.False(t, b.BootOnly())
			},
		},
		{
			name: "predefined boot only",
			line: "local: bootOnly",
			check: func(t *testing.T, r Repository) {
				b := r.(*Builtin)
				assert.Equal(t, Local, b.Predefined())
				assert.True(t, b.BootOnly())
			},
		},
		{
			name: "maven",
			line: "my-maven: https://repo.example.com/maven2/",
			check: func(t *testing.T, r Repository) {
				m := r.(*Maven)
				assert.Equal(t, "my-maven", m.ID())
				assert.Equal(t, "https://repo.example.com/maven2/", m.URL().String())
				assert.False(t, m.AllowInsecureProtocol())
			},
		},
		{
			name: "insecure maven",
			line: "plain: http://repo.example.com/maven2, allowInsecureProtocol",
			check: func(t *testing.T, r Repository) {
				m := r.(*Maven)
				assert.True(t, m.AllowInsecureProtocol())
				assert.False(t, m.BootOnly())
			},
		},
		{
			name: "ivy single pattern",
			line: "my-ivy: https://repo.example.com/ivy, [organization]/[module]/[revision]/[type]s/[artifact].[ext]",
			check: func(t *testing.T, r Repository) {
				i := r.(*Ivy)
				assert.Equal(t, "[organization]/[module]/[revision]/[type]s/[artifact].[ext]", i.IvyPattern())
				assert.Equal(t, i.IvyPattern(), i.ArtifactPattern())
				assert.False(t, i.MavenCompatible())
			},
		},
		{
			name: "ivy all options",
			line: "full: https://repo.example.com, [module]/ivy-[revision].xml, [module]/[artifact]-[revision].[ext], mavenCompatible, skipConsistencyCheck, descriptorOptional, bootOnly",
			check: func(t *testing.T, r Repository) {
				i := r.(*Ivy)
				assert.Equal(t, "[module]/ivy-[revision].xml", i.IvyPattern())
				assert.Equal(t, "[module]/[artifact]-[revision].[ext]", i.ArtifactPattern())
				assert.True(t, i.MavenCompatible())
				assert.True(t, i.SkipConsistencyCheck())
				assert.True(t, i.DescriptorOptional())
				assert.True(t, i.BootOnly())
				assert.False(t, i.AllowInsecureProtocol())
			},
		},
		{
			name: "file url",
			line: "disk: file:///opt/repo, [module]/[artifact].[ext]",
			check: func(t *testing.T, r Repository) {
				i := r.(*Ivy)
				assert.Equal(t, "file", i.URL().Scheme)
				assert.Equal(t, "/opt/repo", i.URL().Path)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := ParseLine(tt.line)
			require.NoError(t, err)
			tt.check(t, repo)
		})
	}
}

func TestParseLine_errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"unknown label", "maven-centrall", ErrUnknownLabel},
		{"unknown label boot only", "nope: bootOnly", ErrUnknownLabel},
		{"insecure", "plain: http://repo.example.com/maven2", ErrInsecureProtocol},
		{"no scheme", "bad: repo.example.com/maven2", ErrInvalidURL},
		{"ftp", "bad: ftp://repo.example.com", ErrInvalidURL},
		{"too many patterns", "bad: https://x.org, [a], [b], [c]", ErrInvalidRepository},
		{"maven with ivy options", "bad: https://x.org, mavenCompatible", ErrInvalidRepository},
		{"empty id", ": https://x.org", ErrInvalidRepository},
		{"undefined variable", "bad: https://x.org/${XSBOOT_TEST_UNDEFINED}", ErrUndefinedVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseList(t *testing.T) {
	repos, err := ParseList([]string{
		"# boot repositories",
		"local",
		"",
		"  maven-central  ",
		"my-maven: https://repo.example.com/maven2",
	})
	require.NoError(t, err)
	require.Len(t, repos, 3)
	assert.Equal(t, "local", repos[0].ID())
	assert.Equal(t, "maven-central", repos[1].ID())
	assert.Equal(t, "my-maven", repos[2].ID())
}

func TestParseList_errors(t *testing.T) {
	_, err := ParseList([]string{"local", "not-a-real-repo"})
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)

	// the registry error is still reachable
	var unknown *UnknownLabelError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "not-a-real-repo", unknown.Input)

	_, err = ParseList([]string{"local", "local: bootOnly"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestParser_expand(t *testing.T) {
	vars := map[string]string{"user.home": "/home/steve", "REPO_HOST": "repo.example.com"}
	p := &Parser{Lookup: func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}}

	tests := []struct {
		in   string
		want string
	}{
		{"https://${REPO_HOST}/maven2", "https://repo.example.com/maven2"},
		{"file://${sbt.ivy.home-${user.home}/.ivy2}/local", "file:///home/steve/.ivy2/local"},
		{"https://${MISSING-fallback.org}/x", "https://fallback.org/x"},
		{"https://plain.org", "https://plain.org"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	repo, err := p.ParseLine("home-ivy: file://${user.home}/ivy, [module]/[artifact].[ext]")
	require.NoError(t, err)
	assert.Equal(t, "/home/steve/ivy", repo.(*Ivy).URL().Path)
}

func TestParser_expand_recursiveValues(t *testing.T) {
	vars := map[string]string{"REPO": "${REPO}", "A": "${B}", "B": "${A}"}
	p := &Parser{Lookup: func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}}

	inputs := []string{"https://x.org/${REPO}", "${A}/${B}", "https://x.org/${unclosed"}
	want := []string{"https://x.org/${REPO}", "${B}/${A}", "https://x.org/${unclosed"}

	got := make([]string, len(inputs))
	errs := make([]error, len(inputs))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, in := range inputs {
			got[i], errs[i] = p.expand(in)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expand did not return")
	}
	for i := range inputs {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i], got[i])
	}
}

func TestRepository_String(t *testing.T) {
	lines := []string{
		"maven-central",
		"local: bootOnly",
		"my-maven: https://repo.example.com/maven2",
		"old: http://repo.example.com/maven2, bootOnly, allowInsecureProtocol",
		"my-ivy: https://repo.example.com/ivy, [module]/[revision]/ivy.xml",
		"two: https://repo.example.com/ivy, [module]/ivy.xml, [module]/[artifact].[ext], mavenCompatible, descriptorOptional, skipConsistencyCheck",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			repo, err := ParseLine(line)
			require.NoError(t, err)

			stringer, ok := repo.(interface{ String() string })
			require.True(t, ok)
			assert.Equal(t, line, stringer.String())

			again, err := ParseLine(stringer.String())
			require.NoError(t, err)
			assert.Equal(t, repo, again)
		})
	}
}
