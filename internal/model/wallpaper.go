package model

// Resolutions 每条壁纸记录固定携带的分辨率列表
var Resolutions = []string{"1920x1080", "2560x1440", "3840x2160"}

// DateLayout 记录 date 字段的格式 (YYYY-MM-DD)
const DateLayout = "2006-01-02"

type Wallpaper struct {
	ID          int64    `json:"id"`          // 创建时的毫秒时间戳
	Title       string   `json:"title"`       // 标题
	Category    string   `json:"category"`    // 分类
	Description string   `json:"description"` // 描述
	Downloads   int      `json:"downloads"`   // 下载次数
	Likes       int      `json:"likes"`       // 点赞数
	Date        string   `json:"date"`        // 创建日期
	Resolutions []string `json:"resolutions"` // 可用分辨率
	Filename    string   `json:"filename"`    // 图片文件名
}

// Document is the whole persisted store: every record, oldest first.
type Document struct {
	Wallpapers []Wallpaper `json:"wallpapers"`
}

// EmptyDocument returns the default document used when nothing is stored yet.
func EmptyDocument() *Document {
	return &Document{Wallpapers: []Wallpaper{}}
}

// Normalize replaces a null wallpaper list with an empty one.
func (d *Document) Normalize() *Document {
	if d.Wallpapers == nil {
		d.Wallpapers = []Wallpaper{}
	}
	return d
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Wallpapers: make([]Wallpaper, len(d.Wallpapers))}
	for i, wp := range d.Wallpapers {
		if wp.Resolutions != nil {
			res := make([]string, len(wp.Resolutions))
			copy(res, wp.Resolutions)
			wp.Resolutions = res
		}
		out.Wallpapers[i] = wp
	}
	return out
}
