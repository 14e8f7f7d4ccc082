package ui

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a one-line message shown above a screen.
type Notice struct {
	Level    Level  `json:"level"`
	Text     string `json:"text"`
	Link     string `json:"link,omitempty"`
	LinkText string `json:"link_text,omitempty"`
}

func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }
func Info(text string) Notice    { return Notice{Level: LevelInfo, Text: text} }
func Warning(text string) Notice { return Notice{Level: LevelWarning, Text: text} }
func Error(text string) Notice   { return Notice{Level: LevelError, Text: text} }

// WithLink attaches a link to the notice.
func (n Notice) WithLink(href, text string) Notice {
	n.Link = href
	n.LinkText = text
	return n
}
