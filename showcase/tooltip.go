package showcase

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/core"
)

// Tooltip handles data-tooltip: the bound value becomes the element's title
// and aria-label.
func Tooltip(ctx core.BindingContext) func() error {
	return func() error {
		v, err := ctx.Value.Resolve()
		if err != nil {
			return err
		}
		text := fmt.Sprint(v)
		if cur, _ := ctx.Node.Attr("title"); cur != text {
			ctx.Node.SetAttr("title", text)
			ctx.Node.SetAttr("aria-label", text)
		}
		return nil
	}
}
