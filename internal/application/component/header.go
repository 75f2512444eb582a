package component

import (
	"context"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

type Header struct {
	in  *interaction.Interactor
	loc locator.CommonLocators
}

func NewHeader(in *interaction.Interactor, loc locator.CommonLocators) *Header {
	return &Header{in: in, loc: loc}
}

func (h *Header) Key() entity.PageKey {
	return entity.ComponentHeader
}

func (h *Header) IsVisible(ctx context.Context) bool {
	return h.in.IsVisible(ctx, h.loc.Header)
}

func (h *Header) IsFooterVisible(ctx context.Context) bool {
	return h.in.IsVisible(ctx, h.loc.Footer)
}

// ClickLogo goes back to the home screen.
func (h *Header) ClickLogo(ctx context.Context) error {
	if err := h.in.Click(ctx, h.loc.Logo); err != nil {
		return err
	}
	if err := h.in.Driver().WaitIdle(ctx); err != nil {
		h.in.Logger().Debug("page did not settle after logo click", "error", err)
	}
	return nil
}
