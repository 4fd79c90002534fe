package styles

import "github.com/colonyops/flare/internal/core/toast"

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconSuccess = "" // 
	IconWarning = "" // 
	IconDanger  = "" // 
	IconInfo    = "" // 
	IconBell    = "" // 
	IconClose   = "" // 
)

// VariantIcon returns the glyph shown next to a toast of the given variant.
func VariantIcon(v toast.Variant) string {
	switch v {
	case toast.VariantSuccess:
		return IconSuccess
	case toast.VariantWarning:
		return IconWarning
	case toast.VariantDanger:
		return IconDanger
	case toast.VariantInfo:
		return IconInfo
	default:
		return IconBell
	}
}
