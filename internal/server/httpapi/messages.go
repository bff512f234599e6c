package httpapi

// Fixed user-facing messages, keyed by operation and outcome. Handlers only
// ever respond with these strings; internal error detail never leaks out.
const (
	MsgUnauthorized = "Not an authenticated user."

	MsgRegisterSuccess  = "Successfully registered."
	MsgRegisterConflict = "This email is already registered."
	MsgRegisterInvalid  = "Email and password are required."

	MsgLoginSuccess       = "Successfully logged in."
	MsgLoginUnknownEmail  = "This email is not registered."
	MsgLoginWrongPassword = "The password does not match."

	MsgUserFound    = "Found the registered user."
	MsgUserNotFound = "No user is registered with that email."
	MsgUserDeleted  = "The user account was deleted."

	MsgTodosFetched = "Fetched all todos."
	MsgTodoCreated  = "A new todo was added to the list."
	MsgTodoReplaced = "The todo was fully updated."
	MsgTodoPatched  = "The todo was partially updated."
	MsgTodoDeleted  = "The todo was deleted."
	MsgTodoNotFound = "No matching todo was found."

	MsgInternalError = "Something went wrong. Please try again."
	MsgInvalidBody   = "The request body is not valid JSON."
)
