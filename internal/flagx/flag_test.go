package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "example.com", "-x", "ignored", "-c", "conf.json"}
	got := FilterArgs(args, []string{"-a", "-c"})
	assert.Equal(t, []string{"-a", "example.com", "-c", "conf.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=zzz"}
	got := FilterArgs(args, []string{"--config"})
	assert.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-c", "-a"}
	got := FilterArgs(args, []string{"-c"})
	assert.Equal(t, []string{"-c"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-c"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"connector", "-c", "settings.json", "-a", "other"}
	assert.Equal(t, "settings.json", JsonConfigFlags())

	os.Args = []string{"connector"}
	assert.Equal(t, "", JsonConfigFlags())
}
