package routers

import (
	"github.com/go-chi/chi/v5"
)

// File routes are key- or patient-addressed. Keys contain slashes
// (patients/<id>/<name>), so the key-addressed routes use a wildcard tail
// rather than a single path parameter.
func (r *Routers) setupFileRoutes(router chi.Router) {
	router.Route("/files", func(files chi.Router) {
		files.With(
			r.Middlewares.RequireClinician,
			r.Middlewares.UploadRateLimitMiddleware(),
		).Post("/upload", r.FileController.UploadFile)

		// Any authenticated role may request a download URL; the ownership
		// check runs against the parsed key inside the usecase.
		files.Get("/download/*", r.FileController.GetDownloadURL)

		files.With(r.Middlewares.RequireClinician).Delete("/*", r.FileController.DeleteFile)

		files.With(r.Middlewares.RequireOwnership("patientID")).
			Get("/patient/{patientID}", r.FileController.ListPatientFiles)
	})
}
