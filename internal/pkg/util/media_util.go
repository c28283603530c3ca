package util

import (
	"Moments/internal/pkg/consts"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// 媒体校验失败消息是对外契约的一部分，勿改动文案
const (
	MsgAudioBadExtension = "Only MP3 audio files are allowed."
	MsgAudioTooLarge     = "MP3 file size larger than 50MB!"
	MsgVideoBadExtension = "Only MP4, AVI, and MOV video files are allowed."
	MsgVideoTooLarge     = "Video size larger than 50MB!"
	MsgImageTooLarge     = "Image size larger than 2MB!"
	MsgImageTooTall      = "Image height larger than 4096px!"
	MsgImageTooWide      = "Image width larger than 4096px!"
)

var videoExtensions = []string{".mp4", ".avi", ".mov"}

// ValidateAudio 校验音频文件名与体积
func ValidateAudio(filename string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".mp3") {
		return NewFieldError("mp3", MsgAudioBadExtension)
	}
	if size > consts.MaxAudioSize {
		return NewFieldError("mp3", MsgAudioTooLarge)
	}
	return nil
}

// ValidateVideo 校验视频文件名与体积
func ValidateVideo(filename string, size int64) error {
	name := strings.ToLower(filename)
	ok := false
	for _, ext := range videoExtensions {
		if strings.HasSuffix(name, ext) {
			ok = true
			break
		}
	}
	if !ok {
		return NewFieldError("video", MsgVideoBadExtension)
	}
	if size > consts.MaxVideoSize {
		return NewFieldError("video", MsgVideoTooLarge)
	}
	return nil
}

// ValidateImage 校验图片体积与解码后的像素尺寸
func ValidateImage(fh *multipart.FileHeader) error {
	if fh.Size > consts.MaxImageSize {
		return NewFieldError("image", MsgImageTooLarge)
	}

	reader, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer func() { _ = reader.Close() }()

	img, err := imaging.Decode(reader)
	if err != nil {
		return fmt.Errorf("failed to decode uploaded image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() > consts.MaxImageHeight {
		return NewFieldError("image", MsgImageTooTall)
	}
	if bounds.Dx() > consts.MaxImageWidth {
		return NewFieldError("image", MsgImageTooWide)
	}
	return nil
}

// BuildObjectName 生成媒体对象存储 Key
func BuildObjectName(prefix string, filename string) string {
	ext := path.Ext(filename)
	return prefix + time.Now().Format("2006/01/02/") + uuid.NewString() + ext
}

// ParseTagNames 归一化标签入参：既支持逗号分隔字符串也支持重复字段
func ParseTagNames(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	seen := make(map[string]struct{}, len(values))
	names := make([]string, 0, len(values))
	for _, v := range values {
		name := strings.TrimSpace(v)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
