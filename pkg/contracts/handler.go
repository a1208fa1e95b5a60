package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Closer is released during graceful shutdown, after the server stopped
// accepting requests.
type Closer interface {
	Close() error
}
