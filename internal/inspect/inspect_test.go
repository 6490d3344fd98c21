package inspect

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/riff/pkg/riff"
)

func parseTree(t *testing.T, c riff.Chunk) riff.Descriptor {
	t.Helper()
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	d, err := riff.Parse(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)
	return d
}

func sample() riff.Chunk {
	return riff.NewRIFF(riff.MustFourCC("WAVE"),
		riff.NewRawChunk(riff.MustFourCC("fmt "), []byte{1, 2, 3, 4}),
		riff.NewList(riff.MustFourCC("INFO"),
			riff.NewRawChunk(riff.MustFourCC("INAM"), []byte("abc")),
		),
		riff.NewRawChunk(riff.MustFourCC("data"), bytes.Repeat([]byte{7}, 40)),
	)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	n, err := Build(parseTree(t, sample()), Options{})
	require.NoError(t, err)

	assert.Equal(t, "RIFF", n.ID)
	assert.Equal(t, "WAVE", n.ListType)
	require.Len(t, n.Children, 3)
	assert.Equal(t, "fmt ", n.Children[0].Path)
	assert.Nil(t, n.Children[0].Data)

	info := n.Children[1]
	assert.Equal(t, "LIST-INFO", info.Path)
	require.Len(t, info.Children, 1)
	assert.Equal(t, `LIST-INFO\INAM`, info.Children[0].Path)
	assert.EqualValues(t, 1, info.Children[0].Padding)
}

func TestBuildWithData(t *testing.T) {
	t.Parallel()

	n, err := Build(parseTree(t, sample()), Options{IncludeData: true, MaxData: 8})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, n.Children[0].Data)
	assert.Nil(t, n.Children[2].Data, "payloads above MaxData are skipped")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	n, err := Build(parseTree(t, sample()), Options{IncludeData: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, n))

	var back Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, n.Children[1].Children[0].Path, back.Children[1].Children[0].Path)
	assert.Equal(t, n.Children[2].Data, back.Children[2].Data)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	n, err := Build(parseTree(t, sample()), Options{IncludeData: true, MaxData: 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, n))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 5)
	assert.Equal(t, "RIFF WAVE  size=88 offset=0", string(lines[0]))
	assert.Equal(t, "  fmt   size=4 offset=12  path=fmt   data=01020304", string(lines[1]))
	assert.Equal(t, `    INAM  size=3 offset=36  path=LIST-INFO\INAM  data=616263`, string(lines[3]))
}
