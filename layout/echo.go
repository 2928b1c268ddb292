package layout

import (
	"errors"
	"io"

	"github.com/labstack/echo/v4"
)

// EchoRenderer serves c.Render calls from a Composer. The name is looked up
// among defined layouts first; otherwise it is rendered as a single fragment.
type EchoRenderer struct {
	Composer *Composer
}

var _ echo.Renderer = (*EchoRenderer)(nil)

func (er *EchoRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	err := er.Composer.Render(w, name, data)
	if errors.Is(err, ErrUnknownLayout) {
		return er.Composer.Compose(w, []string{name}, "", data)
	}
	return err
}
