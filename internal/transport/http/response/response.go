package response

// Resp is the envelope every endpoint answers with.
type Resp struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func OK(data any, msg string) Resp {
	return Resp{Success: true, Data: data, Message: msg}
}

// Error builds a failed envelope; an empty msg falls back to the status text.
func Error(status int, msg string) Resp {
	if msg == "" {
		msg = MsgFor(status)
	}
	return Resp{Success: false, Message: msg}
}
