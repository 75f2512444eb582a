package component

import (
	"time"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser/memory"
	"browser-pom/internal/infrastructure/locators"
	"browser-pom/internal/infrastructure/logger"
)

func newTestKit() (*interaction.Interactor, *memory.Driver, locator.Catalog) {
	d := memory.New()
	log := logger.NewNop()
	w := wait.NewWaiter(d, wait.NewPoller(5*time.Millisecond, time.Second), log)
	in := interaction.NewInteractor(d, w, log, interaction.Config{ActionTimeout: 100 * time.Millisecond})
	return in, d, locators.Default()
}

func tab(text string, selected bool) *memory.Element {
	el := &memory.Element{Tag: "button", Text: text}
	el.SetAttr("role", "tab")
	if selected {
		el.SetAttr("aria-selected", "true")
	} else {
		el.SetAttr("aria-selected", "false")
	}
	return el
}
