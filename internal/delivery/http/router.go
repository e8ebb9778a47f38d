package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"openlater/internal/delivery/http/controllers"
)

const welcomeHTML = `
	<h2>Welcome to OpenLater</h2>
	<p>This is the root directory of the API.</p>
	<h3>Available Endpoints:</h3>
	<ul>
		<li>GET <code>/capsules</code> - Fetch all capsules (messages hidden for locked capsules)</li>
		<li>GET <code>/capsule/{publicID}</code> - Fetch a capsule by its public identifier</li>
		<li>POST <code>/create</code> - Create a new capsule</li>
	</ul>
`

// NewRouter initializes the HTTP router with all application routes
func NewRouter(capsuleController *controllers.CapsuleController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /{$}", welcome)
	mux.HandleFunc("POST /create", capsuleController.CreateCapsule)
	mux.HandleFunc("GET /capsules", capsuleController.ListCapsules)
	mux.HandleFunc("GET /capsule/{publicID}", capsuleController.GetCapsule)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(welcomeHTML))
}
