package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/youruser/teeapp/internal/config"
	imagepkg "github.com/youruser/teeapp/internal/image"
	"github.com/youruser/teeapp/internal/layout"
	"github.com/youruser/teeapp/internal/tee"
)

// Handler serves tee renders using one pair of layouts.
type Handler struct {
	Conf    *config.Config
	UV      *layout.UVLayout
	Skin    *layout.SkinLayout
	Fetcher *imagepkg.Fetcher
}

func NewHandler(conf *config.Config) (*Handler, error) {
	uv, skin, err := conf.Layouts()
	if err != nil {
		return nil, err
	}
	return &Handler{
		Conf: conf,
		UV:   uv,
		Skin: skin,
		Fetcher: &imagepkg.Fetcher{
			Client:   &http.Client{Timeout: conf.FetchTimeout},
			MaxBytes: conf.MaxFetchBytes,
		},
	}, nil
}

// badRequest marks errors caused by malformed query parameters.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func invalid(format string, args ...any) error {
	return badRequest{fmt.Errorf(format, args...)}
}

func statusOf(err error) int {
	var (
		bad    badRequest
		tooBig *http.MaxBytesError
		decErr *imagepkg.DecodeError
		layErr *layout.Error
		extErr *imagepkg.ExtractionError
		fetErr *imagepkg.FetchError
		dimErr *tee.DimensionError
	)
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &decErr), errors.As(err, &layErr), errors.As(err, &extErr), errors.As(err, &dimErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetErr):
		return http.StatusBadGateway
	case errors.Is(err, imagepkg.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	// composition and encode failures
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(statusOf(err), gin.H{"error": err.Error()})
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type renderOptions struct {
	eyes   layout.PartID
	shift  *imagepkg.ColorShift
	format imagepkg.Format
}

func (h *Handler) options(c *gin.Context) (renderOptions, error) {
	opt := renderOptions{eyes: h.Conf.Eyes(), format: h.Conf.Format()}
	if s := c.Query("eyes"); s != "" {
		id, err := layout.ParseEyes(s)
		if err != nil {
			return opt, badRequest{err}
		}
		opt.eyes = id
	}
	if s := c.Query("format"); s != "" {
		f, err := imagepkg.ParseFormat(s)
		if err != nil {
			return opt, badRequest{err}
		}
		if !f.CanEncode() {
			return opt, invalid("format %v cannot be encoded", f)
		}
		opt.format = f
	}
	if s := c.Query("color"); s != "" {
		shift, err := parseColor(s, c.Query("ddnet") == "1")
		if err != nil {
			return opt, badRequest{err}
		}
		opt.shift = &shift
	}
	return opt, nil
}

// parseColor reads "#rrggbb" (the '#' may be omitted) or, with ddnet set, a decimal
// packed HSL value as found in DDNet player info.
func parseColor(s string, ddnet bool) (imagepkg.ColorShift, error) {
	if ddnet {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return imagepkg.ColorShift{}, fmt.Errorf("parse ddnet color %q: %w", s, err)
		}
		return imagepkg.ShiftFromDDNet(uint32(v)), nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return imagepkg.ShiftFromHex(s)
}

func (h *Handler) respond(c *gin.Context, t *tee.Tee, opt renderOptions) {
	if opt.shift != nil {
		t.ApplyHSL(*opt.shift)
	}
	out, err := t.Compose(h.Skin, layout.Eyes(opt.eyes), opt.format)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, opt.format.MIME(), out)
}

func (h *Handler) fetch(c *gin.Context) (*tee.Tee, error) {
	src := c.Query("url")
	if src == "" {
		return nil, invalid("missing url parameter")
	}
	return tee.NewFromURL(c.Request.Context(), h.Fetcher, src, h.UV)
}

// renderURL composes the skin found at ?url=.
func (h *Handler) renderURL(c *gin.Context) {
	opt, err := h.options(c)
	if err != nil {
		fail(c, err)
		return
	}
	t, err := h.fetch(c)
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, t, opt)
}

// renderBody composes the skin sent as the request body. The input format comes from
// ?format_in= or is sniffed.
func (h *Handler) renderBody(c *gin.Context) {
	opt, err := h.options(c)
	if err != nil {
		fail(c, err)
		return
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.Conf.MaxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		fail(c, err)
		return
	}
	if len(data) == 0 {
		fail(c, invalid("empty body"))
		return
	}

	var format imagepkg.Format
	if s := c.Query("format_in"); s != "" {
		if format, err = imagepkg.ParseFormat(s); err != nil {
			fail(c, badRequest{err})
			return
		}
	} else if format, err = imagepkg.Detect(data); err != nil {
		fail(c, err)
		return
	}

	t, err := tee.New(data, h.UV, format)
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, t, opt)
}

// part returns one extracted part of the skin at ?url= as PNG.
func (h *Handler) part(c *gin.Context) {
	id, err := layout.ParsePartID(c.Param("part"))
	if err != nil {
		fail(c, badRequest{err})
		return
	}
	t, err := h.fetch(c)
	if err != nil {
		fail(c, err)
		return
	}
	img, ok := t.Part(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("skin has no %v part", id)})
		return
	}
	out, err := imagepkg.Encode(img, imagepkg.FormatPNG)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, imagepkg.FormatPNG.MIME(), out)
}

// palette lists the dominant colors of the body of the skin at ?url=.
func (h *Handler) palette(c *gin.Context) {
	n := 5
	if s := c.Query("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 16 {
			fail(c, invalid("n must be between 1 and 16"))
			return
		}
		n = v
	}
	t, err := h.fetch(c)
	if err != nil {
		fail(c, err)
		return
	}
	body, ok := t.Part(layout.Body)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "skin has no body part"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colors": imagepkg.Palette(body, n)})
}

// qr returns a PNG QR code for ?text=. Without text, ?url= is turned into a share
// link to its render.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		src := c.Query("url")
		if src == "" {
			fail(c, invalid("missing text or url parameter"))
			return
		}
		text = h.shareLink(c, src)
	}
	size := h.Conf.QRSize
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			size = v
		}
	}
	b, err := imagepkg.ShareQR(text, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, imagepkg.FormatPNG.MIME(), b)
}

func (h *Handler) shareLink(c *gin.Context, src string) string {
	base := strings.TrimSuffix(h.Conf.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/api/render?url=" + url.QueryEscape(src)
}
