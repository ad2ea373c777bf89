package config

type ProviderName string

const (
	ProviderResend  ProviderName = "resend"
	ProviderEmailJS ProviderName = "emailjs"
	ProviderSMTP    ProviderName = "smtp"
)

var AllowedProviders = []ProviderName{ProviderResend, ProviderEmailJS, ProviderSMTP}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Response messages. These strings are part of the HTTP contract the site's
// contact form relies on.
const (
	MsgHealthOK       = "Server is running"
	MsgEmailSent      = "Email sent successfully"
	MsgMissingField   = "Name, email, and message are required"
	MsgInvalidEmail   = "Invalid email address"
	MsgInvalidBody    = "Invalid request body"
	MsgSendFailed     = "Failed to send email. Please try again later."
	MsgTooManyRequest = "Too many requests, please try again later."
)

const SubjectPrefix = "New Portfolio Contact from "
