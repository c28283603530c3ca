package consts

// 媒体对象存储路径前缀
const (
	ImagePrefix = "images/"
	VideoPrefix = "videos/"
	AudioPrefix = "mp3/"
)

// DefaultPostImage 未上传图片时的兜底资源
const DefaultPostImage = "images/default_post.png"

// 媒体体积上限
const (
	MaxAudioSize = 50 * 1024 * 1024
	MaxVideoSize = 50 * 1024 * 1024
	MaxImageSize = 2 * 1024 * 1024
)

// 图片像素上限
const (
	MaxImageWidth  = 4096
	MaxImageHeight = 4096
)

// DefaultImageFilter 滤镜默认值
const DefaultImageFilter = "normal"

// ImageFilters 固定滤镜枚举
var ImageFilters = map[string]string{
	"1977":      "1977",
	"brannan":   "Brannan",
	"earlybird": "Earlybird",
	"hudson":    "Hudson",
	"inkwell":   "Inkwell",
	"lofi":      "Lo-Fi",
	"kelvin":    "Kelvin",
	"normal":    "Normal",
	"nashville": "Nashville",
	"rise":      "Rise",
	"toaster":   "Toaster",
	"valencia":  "Valencia",
	"walden":    "Walden",
	"xpro2":     "X-pro II",
}

// IsValidImageFilter 判断滤镜是否属于枚举
func IsValidImageFilter(name string) bool {
	_, ok := ImageFilters[name]
	return ok
}
