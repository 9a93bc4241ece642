// Package presenter drives a note list view from a repository.
//
// A Presenter holds the notes currently shown, in display order, and turns
// repository outcomes into View directives. Public methods return at once;
// results are applied and rendered later on the presenter's Dispatcher,
// which by default is a private Loop.
//
//	p := presenter.New(repo, view)
//	defer p.Close()
//
//	p.Load()
//	p.CreateNote("Buy milk", "", time.Now().Add(24*time.Hour))
//	p.Wait()
//
// The list never changes ahead of the repository: a failed save, update or
// delete produces a single ShowError and leaves the list and rows as they were.
package presenter
