package message

import "testing"

func TestCommandParsing(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		command string
		args    string
		isCmd   bool
	}{
		{"plain text", "hello world", "", "", false},
		{"simple command", "/start", "start", "", true},
		{"command with args", "/language de", "language", "de", true},
		{"command with bot suffix", "/start@tolka_bot", "start", "", true},
		{"bot suffix and args", "/language@tolka_bot fr", "language", "fr", true},
		{"uppercase command", "/START", "start", "", true},
		{"slash only mid-text", "see /start above", "", "", false},
		{"newline separated args", "/language\nfa", "language", "fa", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := InboundMessage{Text: tc.text}
			if got := m.IsCommand(); got != tc.isCmd {
				t.Errorf("IsCommand() = %v, want %v", got, tc.isCmd)
			}
			if got := m.Command(); got != tc.command {
				t.Errorf("Command() = %q, want %q", got, tc.command)
			}
			if got := m.CommandArgs(); got != tc.args {
				t.Errorf("CommandArgs() = %q, want %q", got, tc.args)
			}
		})
	}
}

func TestChatTypeHelpers(t *testing.T) {
	dm := InboundMessage{Chat: Chat{ID: "1", Type: ChatDM}}
	if !dm.IsDirectMessage() || dm.IsGroup() {
		t.Error("ChatDM should be a direct message and not a group")
	}

	group := InboundMessage{Chat: Chat{ID: "2", Type: ChatGroup}}
	if !group.IsGroup() || group.IsDirectMessage() {
		t.Error("ChatGroup should be a group and not a direct message")
	}
}

func TestOutboundConstructors(t *testing.T) {
	chat := Chat{ID: "42", Type: ChatDM}

	txt := NewTextMessage("telegram", chat, "hi")
	if txt.Channel != "telegram" || txt.Text != "hi" || txt.Keyboard != nil {
		t.Errorf("NewTextMessage built %+v", txt)
	}

	kb := &Keyboard{Rows: [][]Button{{{Label: "🇫🇷 French", Data: "setlang|fr"}}}}
	menu := NewMenuMessage("telegram", chat, "pick one", kb)
	if menu.Keyboard == nil || len(menu.Keyboard.Rows) != 1 {
		t.Errorf("NewMenuMessage built %+v", menu)
	}

	edit := NewEdit("telegram", chat, "99", "done")
	if edit.EditMessageID != "99" || edit.Text != "done" {
		t.Errorf("NewEdit built %+v", edit)
	}
}
