package chunkbuf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaselineProfile(t *testing.T) {
	p := NewBaselineProfile()
	assert.Equal(t, defaultChunkSize, p.ChunkSize)
	assert.Equal(t, defaultChunkingCapacity, p.ChunkingCapacity)
	assert.Nil(t, p.Instrument)
}

func TestProfileLoad(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{
		"profile_version": 1,
		"chunk_size":      8192,
	})
	assert.NoError(t, err)
	assert.Equal(t, 8192, p.ChunkSize)
	assert.Equal(t, defaultChunkingCapacity, p.ChunkingCapacity)
}

func TestProfileLoadVersionMismatch(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{"profile_version": 2})
	assert.Error(t, err)
}

func TestProfileLoadInvalidChunkSize(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{"chunk_size": 0})
	assert.Error(t, err)
}

func TestProfileLoadInstrument(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{
		"instrument": map[string]interface{}{"name": "nil"},
	})
	assert.NoError(t, err)
	assert.NotNil(t, p.Instrument)
}

func TestProfileLoadUnknownInstrument(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{
		"instrument": map[string]interface{}{"name": "bogus"},
	})
	assert.Error(t, err)
}

func TestLoadProfileFromPath(t *testing.T) {
	dir, err := ioutil.TempDir("", "profile")
	assert.NoError(t, err)
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "profile.yml")
	yaml := "profile_version: 1\nchunk_size: 1024\nchunking_capacity: 32\n"
	assert.NoError(t, ioutil.WriteFile(path, []byte(yaml), os.ModePerm))

	p, err := LoadProfileFromPath(path)
	assert.NoError(t, err)
	assert.Equal(t, 1024, p.ChunkSize)
	assert.Equal(t, 32, p.ChunkingCapacity)
}

func TestProfileDump(t *testing.T) {
	p := NewBaselineProfile()
	dump := p.Dump()
	assert.True(t, strings.Contains(dump, "chunk_size"))
	assert.True(t, strings.Contains(dump, "chunking_capacity"))
}

func TestInvalidChunkSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewLooseBufferWithChunkSize(0) })
}
