package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlFilter = `
type: Spearman,Bowman
side: [1, 2]
or:
  race: elf
not:
  canrecruit: yes
or:
  id: Konrad
filter_adjacent:
  - is_enemy: yes
  - count: 2-6
`

func TestDecodeYAMLKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	cfg, err := config.DecodeYAML("filter.yaml", []byte(yamlFilter))
	require.NoError(t, err)

	assert.Equal(t, "Spearman,Bowman", cfg.Get("type").String())
	assert.Equal(t, "1,2", cfg.Get("side").String())

	var keys []string
	for _, child := range cfg.Children() {
		keys = append(keys, child.Key)
	}

	assert.Equal(t, []string{"or", "not", "or", "filter_adjacent", "filter_adjacent"}, keys)
	assert.Equal(t, "Konrad", cfg.ChildrenByKey("or")[1].Get("id").String())
}

func TestDecodeYAMLErrors(t *testing.T) {
	t.Parallel()

	_, err := config.DecodeYAML("bad.yaml", []byte("- a\n- b\n"))
	require.Error(t, err)

	var decodeErr config.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "bad.yaml", decodeErr.Filename)
	assert.Equal(t, 1, decodeErr.Line)

	cfg, err := config.DecodeYAML("empty.yaml", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Empty())
}

const hclFilter = `
type     = ["Spearman", "Bowman"]
level    = 1
canrecruit = false

and {
  side = 1
}

filter_adjacent {
  is_enemy = true
  adjacent = "n,-n"
}
`

func TestDecodeHCL(t *testing.T) {
	t.Parallel()

	cfg, err := config.DecodeHCL("filter.hcl", []byte(hclFilter))
	require.NoError(t, err)

	assert.Equal(t, "Spearman,Bowman", cfg.Get("type").String())
	assert.Equal(t, "1", cfg.Get("level").String())
	assert.False(t, cfg.Get("canrecruit").ToBool(true))

	children := cfg.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "and", children[0].Key)
	assert.Equal(t, "filter_adjacent", children[1].Key)
	assert.True(t, children[1].Cfg.Get("is_enemy").ToBool(false))
}

func TestDecodeHCLRejectsLabels(t *testing.T) {
	t.Parallel()

	_, err := config.DecodeHCL("filter.hcl", []byte("and \"x\" {\n}\n"))
	require.Error(t, err)

	var decodeErr config.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 1, decodeErr.Line)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	plain := filepath.Join(dir, "filter.yml")
	require.NoError(t, os.WriteFile(plain, []byte(yamlFilter), 0o644))

	compressed := filepath.Join(dir, "filter.yaml.zst")
	require.NoError(t, config.CompressFile(compressed, []byte(yamlFilter)))

	fromPlain, err := config.ReadFile(plain)
	require.NoError(t, err)

	fromCompressed, err := config.ReadFile(compressed)
	require.NoError(t, err)

	assert.True(t, fromPlain.Equal(fromCompressed))

	_, err = config.ReadFile(filepath.Join(dir, "filter.toml"))
	require.Error(t, err)

	unknown := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("a = 1"), 0o644))

	_, err = config.ReadFile(unknown)

	var formatErr config.UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
}
