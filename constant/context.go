package constant

type ContextKey string

// ActorKey carries the authenticated actor (id + role) on the request context.
const ActorKey ContextKey = "actor"
