// Package component holds page objects for widgets shared across screens: feedback
// indicators, header, sidebar, tab strip, search box, filter panel, column chooser and
// table pagination. Each one reads its locators from the catalog and acts through a
// shared Interactor.
package component
