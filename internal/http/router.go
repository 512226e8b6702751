package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"supaagent/internal/auth"
	"supaagent/internal/handlers"
	"supaagent/internal/ingest"
	"supaagent/internal/rag"
	"supaagent/internal/service"
	"supaagent/internal/storage"
	"supaagent/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB             *sql.DB
	VectorStore    vectorstore.VectorStore
	CollectionName string

	Engine   rag.Engine
	Pipeline *ingest.Pipeline
	Inbound  service.InboundService

	Issuer      *auth.TokenIssuer
	VerifyToken string

	Companies     storage.CompanyStore
	Chatbots      storage.ChatbotStore
	Documents     storage.DocumentStore
	Conversations storage.ConversationStore
	Usage         storage.UsageStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)
	webhookHandler := handlers.NewWebhookHandler(deps.VerifyToken, deps.Inbound)
	companyHandler := handlers.NewCompanyHandler(deps.Companies, deps.Issuer)
	chatbotHandler := handlers.NewChatbotHandler(deps.Chatbots)
	knowledgeHandler := handlers.NewKnowledgeHandler(deps.Chatbots, deps.Documents, deps.Pipeline)
	conversationHandler := handlers.NewConversationHandler(deps.Chatbots, deps.Conversations)
	usageHandler := handlers.NewUsageHandler(deps.Chatbots, deps.Usage)
	queryHandler := handlers.NewQueryHandler(service.NewQueryService(deps.Engine))

	// Meta webhook endpoints are authenticated by the verify token, not JWT.
	r.Get("/webhook", webhookHandler.Verify)
	r.Post("/webhook", webhookHandler.Receive)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Post("/companies/register", companyHandler.Register)
		r.Post("/companies/login", companyHandler.Login)

		// Everything below requires a company session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Issuer))

			r.Route("/companies/{id}", func(r chi.Router) {
				r.Get("/", companyHandler.Get)
				r.Put("/", companyHandler.Update)
				r.Delete("/", companyHandler.Delete)
			})

			r.Route("/chatbots", func(r chi.Router) {
				r.Post("/", chatbotHandler.Create)
				r.Get("/", chatbotHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", chatbotHandler.Get)
					r.Put("/", chatbotHandler.Update)
					r.Delete("/", chatbotHandler.Delete)
					r.Patch("/persona", chatbotHandler.UpdatePersona)

					r.Post("/knowledge", knowledgeHandler.Upload)
					r.Get("/knowledge", knowledgeHandler.List)
					r.Delete("/knowledge/{docId}", knowledgeHandler.Delete)
				})
			})

			r.Post("/embed/{docId}", knowledgeHandler.Reembed)

			r.Method(http.MethodPost, "/query", queryHandler)

			r.Get("/conversations/single/{convoId}", conversationHandler.Get)
			r.Get("/conversations/{id}", conversationHandler.List)

			r.Get("/usage/chatbot/{id}", usageHandler.ByChatbot)
			r.Get("/usage/company/{companyId}", usageHandler.ByCompany)
		})
	})

	return r
}
