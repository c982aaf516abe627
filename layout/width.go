package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const defaultTabWidth = 4

func cellWidth(text string, x, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(x, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(x, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	adv := tabWidth - x%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}
