package util

import (
	"Moments/internal/pkg/consts"
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)))
	require.NoError(t, err)
	return buf.Bytes()
}

func fieldMessage(t *testing.T, err error) string {
	t.Helper()

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	return fe.Message
}

func TestValidateAudio(t *testing.T) {
	assert.NoError(t, ValidateAudio("track.mp3", 1024))
	assert.NoError(t, ValidateAudio("TRACK.MP3", 1024))

	err := ValidateAudio("track.wav", 1024)
	assert.Equal(t, MsgAudioBadExtension, fieldMessage(t, err))

	err = ValidateAudio("track.mp3", consts.MaxAudioSize+1)
	assert.Equal(t, MsgAudioTooLarge, fieldMessage(t, err))
}

func TestValidateVideo(t *testing.T) {
	for _, name := range []string{"clip.mp4", "clip.avi", "clip.mov", "CLIP.MOV"} {
		assert.NoError(t, ValidateVideo(name, 1024), name)
	}

	err := ValidateVideo("clip.mkv", 1024)
	assert.Equal(t, MsgVideoBadExtension, fieldMessage(t, err))

	err = ValidateVideo("clip.mp4", consts.MaxVideoSize+1)
	assert.Equal(t, MsgVideoTooLarge, fieldMessage(t, err))
}

func TestValidateImage(t *testing.T) {
	fh := makeFileHeader(t, "photo.png", pngBytes(t, 64, 64))
	assert.NoError(t, ValidateImage(fh))

	fh = makeFileHeader(t, "big.png", bytes.Repeat([]byte{0xff}, consts.MaxImageSize+1))
	err := ValidateImage(fh)
	assert.Equal(t, MsgImageTooLarge, fieldMessage(t, err))

	fh = makeFileHeader(t, "tall.png", pngBytes(t, 1, consts.MaxImageHeight+1))
	err = ValidateImage(fh)
	assert.Equal(t, MsgImageTooTall, fieldMessage(t, err))

	fh = makeFileHeader(t, "wide.png", pngBytes(t, consts.MaxImageWidth+1, 1))
	err = ValidateImage(fh)
	assert.Equal(t, MsgImageTooWide, fieldMessage(t, err))
}

func TestValidateImageRejectsGarbage(t *testing.T) {
	fh := makeFileHeader(t, "fake.png", []byte("not an image"))
	assert.Error(t, ValidateImage(fh))
}

func TestBuildObjectName(t *testing.T) {
	name := BuildObjectName(consts.ImagePrefix, "photo.png")
	assert.True(t, strings.HasPrefix(name, consts.ImagePrefix))
	assert.True(t, strings.HasSuffix(name, ".png"))

	other := BuildObjectName(consts.ImagePrefix, "photo.png")
	assert.NotEqual(t, name, other)
}

func TestParseTagNames(t *testing.T) {
	assert.Equal(t, []string{"music", "live"}, ParseTagNames([]string{"music, live ,music,"}))
	assert.Equal(t, []string{"a", "b"}, ParseTagNames([]string{"a", "b", "a"}))
	assert.Empty(t, ParseTagNames([]string{" ", ""}))
	assert.Empty(t, ParseTagNames(nil))
}
