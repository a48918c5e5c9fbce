package board

import "github.com/ByLCY/notecard/layout"

// 看板卡片共用的排版样式（像素）。
const (
	titleSize   = 32
	headingSize = 26
	bodySize    = 24
	detailSize  = 22
	footerSize  = 20

	sectionGap = 20
	itemGap    = 6
	footerFill = "#666666"
)

func title(text string) layout.Line {
	return layout.Line{Text: text, FontSize: titleSize, FontWeight: "bold"}
}

func heading(text string) layout.Line {
	return layout.Line{Text: text, FontSize: headingSize, FontWeight: "bold", GapBefore: sectionGap}
}

func item(text string) layout.Line {
	return layout.Line{Text: text, FontSize: bodySize, GapBefore: itemGap}
}
