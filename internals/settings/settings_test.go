package settings

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	v, err := ParseValue("noninteractive", "yes")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ParseValue("repositories", "local, maven-central,")
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "maven-central"}, v)

	v, err = ParseValue("throttle", "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = ParseValue("throttle", "fast")
	assert.Error(t, err)

	_, err = ParseValue("nope", "1")
	assert.EqualError(t, err, `config key "nope" does not exist`)
}

func TestWorkspace(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("repositories", []string{"maven-central"})
	viper.Set("throttle", 4.0)

	s := Workspace()
	assert.Equal(t, []string{"maven-central"}, s.Repositories)
	assert.Equal(t, 4.0, s.Throttle)
	assert.NotEmpty(t, s.SbtFile)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(Entries))
	assert.Equal(t, "cachedir", keys[0])
}
