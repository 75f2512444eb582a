package service

import (
	"fmt"
	"slices"
	"sync"

	"browser-pom/internal/application/component"
	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/pages"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// PageObject is anything the factory can build.
type PageObject interface {
	Key() entity.PageKey
}

type constructor func(f *PageFactory) PageObject

// PageFactory builds page objects on first use and caches one instance per key. A
// factory belongs to a single test; it is not meant to be shared.
type PageFactory struct {
	in      *interaction.Interactor
	catalog locator.Catalog
	// maxPages is handed to the users page; zero keeps its default.
	maxPages int

	mu           sync.Mutex
	constructors map[entity.PageKey]constructor
	instances    map[entity.PageKey]PageObject
}

type FactoryOption func(*PageFactory)

func WithMaxPages(n int) FactoryOption {
	return func(f *PageFactory) { f.maxPages = n }
}

func NewPageFactory(in *interaction.Interactor, catalog locator.Catalog, opts ...FactoryOption) *PageFactory {
	f := &PageFactory{
		in:        in,
		catalog:   catalog,
		instances: make(map[entity.PageKey]PageObject),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.constructors = map[entity.PageKey]constructor{
		entity.PageLogin: func(f *PageFactory) PageObject {
			return pages.NewLogin(f.in, f.catalog.Login, f.Feedback())
		},
		entity.PageUsers: func(f *PageFactory) PageObject {
			u := pages.NewUsers(f.in, f.catalog.Users, f.Feedback(), f.Paging(), f.Search(), f.Filter(), f.Columns())
			if f.maxPages > 0 {
				u.MaxPages = f.maxPages
			}
			return u
		},
		entity.PageDashboard: func(f *PageFactory) PageObject {
			return pages.NewDashboard(f.in, f.catalog.Dashboard)
		},
		entity.ComponentSidebar: func(f *PageFactory) PageObject {
			return component.NewSidebar(f.in, f.catalog.Sidebar)
		},
		entity.ComponentHeader: func(f *PageFactory) PageObject {
			return component.NewHeader(f.in, f.catalog.Common)
		},
		entity.ComponentTabs: func(f *PageFactory) PageObject {
			return component.NewTabs(f.in, f.catalog.Tabs)
		},
		entity.ComponentSearch: func(f *PageFactory) PageObject {
			return component.NewSearch(f.in, f.catalog.Search, f.Feedback())
		},
		entity.ComponentFilter: func(f *PageFactory) PageObject {
			return component.NewFilter(f.in, f.catalog.Filter, f.catalog.Common, f.Feedback())
		},
		entity.ComponentPaging: func(f *PageFactory) PageObject {
			return component.NewPaging(f.in, f.catalog.Common, f.Feedback())
		},
		entity.ComponentColumns: func(f *PageFactory) PageObject {
			return component.NewColumns(f.in, f.catalog.Columns, f.catalog.Common, f.Feedback())
		},
		entity.ComponentFeedback: func(f *PageFactory) PageObject {
			return component.NewFeedback(f.in, f.catalog.Common)
		},
	}
	return f
}

// Get returns the cached page object for key, building it on first use.
func (f *PageFactory) Get(key entity.PageKey) (PageObject, error) {
	f.mu.Lock()
	if po, ok := f.instances[key]; ok {
		f.mu.Unlock()
		return po, nil
	}
	build, ok := f.constructors[key]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownPage, key)
	}

	// Constructors call back into Get for shared components, so build without the lock.
	po := build(f)

	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.instances[key]; ok {
		return existing, nil
	}
	f.instances[key] = po
	f.in.Logger().Debug("page object created", "page", key)
	return po, nil
}

// Keys lists the registered keys in sorted order.
func (f *PageFactory) Keys() []entity.PageKey {
	keys := make([]entity.PageKey, 0, len(f.constructors))
	for k := range f.constructors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Reset drops every cached instance.
func (f *PageFactory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.instances)
}

func (f *PageFactory) Catalog() locator.Catalog {
	return f.catalog
}

func (f *PageFactory) Interactor() *interaction.Interactor {
	return f.in
}

func (f *PageFactory) Login() *pages.Login         { return mustGet[*pages.Login](f, entity.PageLogin) }
func (f *PageFactory) Users() *pages.Users         { return mustGet[*pages.Users](f, entity.PageUsers) }
func (f *PageFactory) Dashboard() *pages.Dashboard { return mustGet[*pages.Dashboard](f, entity.PageDashboard) }

func (f *PageFactory) Sidebar() *component.Sidebar {
	return mustGet[*component.Sidebar](f, entity.ComponentSidebar)
}

func (f *PageFactory) Header() *component.Header {
	return mustGet[*component.Header](f, entity.ComponentHeader)
}

func (f *PageFactory) Tabs() *component.Tabs {
	return mustGet[*component.Tabs](f, entity.ComponentTabs)
}

func (f *PageFactory) Search() *component.Search {
	return mustGet[*component.Search](f, entity.ComponentSearch)
}

func (f *PageFactory) Filter() *component.Filter {
	return mustGet[*component.Filter](f, entity.ComponentFilter)
}

func (f *PageFactory) Paging() *component.Paging {
	return mustGet[*component.Paging](f, entity.ComponentPaging)
}

func (f *PageFactory) Columns() *component.Columns {
	return mustGet[*component.Columns](f, entity.ComponentColumns)
}

func (f *PageFactory) Feedback() *component.Feedback {
	return mustGet[*component.Feedback](f, entity.ComponentFeedback)
}

// mustGet backs the typed accessors, whose keys are always registered.
func mustGet[T PageObject](f *PageFactory, key entity.PageKey) T {
	po, err := f.Get(key)
	if err != nil {
		panic(err)
	}
	return po.(T)
}
