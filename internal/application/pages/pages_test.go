package pages

import (
	"time"

	"browser-pom/internal/application/component"
	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser/memory"
	"browser-pom/internal/infrastructure/locators"
	"browser-pom/internal/infrastructure/logger"
)

type kit struct {
	in  *interaction.Interactor
	d   *memory.Driver
	cat locator.Catalog
	fb  *component.Feedback
}

func newKit() kit {
	d := memory.New()
	log := logger.NewNop()
	w := wait.NewWaiter(d, wait.NewPoller(5*time.Millisecond, time.Second), log)
	in := interaction.NewInteractor(d, w, log, interaction.Config{ActionTimeout: 100 * time.Millisecond})
	cat := locators.Default()
	return kit{in: in, d: d, cat: cat, fb: component.NewFeedback(in, cat.Common)}
}

func (k kit) users() *Users {
	return NewUsers(k.in, k.cat.Users, k.fb,
		component.NewPaging(k.in, k.cat.Common, k.fb),
		component.NewSearch(k.in, k.cat.Search, k.fb),
		component.NewFilter(k.in, k.cat.Filter, k.cat.Common, k.fb),
		component.NewColumns(k.in, k.cat.Columns, k.cat.Common, k.fb),
	)
}
