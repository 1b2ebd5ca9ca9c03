package bot

// MenuAction is the closed set of inline-menu actions. Every callback
// payload maps to exactly one of these; unknown payloads are dropped.
type MenuAction int

const (
	ActionShowMenu MenuAction = iota
	ActionShowInfo
	ActionShowAskPrompt
	ActionClearHistory
)

const (
	callbackShowMenu     = "back_to_menu"
	callbackShowInfo     = "ugmsa_info"
	callbackShowAsk      = "ask_question"
	callbackClearHistory = "clear_history"
)

// ParseMenuAction maps a callback payload to its MenuAction.
func ParseMenuAction(data string) (MenuAction, bool) {
	switch data {
	case callbackShowMenu:
		return ActionShowMenu, true
	case callbackShowInfo:
		return ActionShowInfo, true
	case callbackShowAsk:
		return ActionShowAskPrompt, true
	case callbackClearHistory:
		return ActionClearHistory, true
	default:
		return 0, false
	}
}

// String returns the metric label for the action.
func (a MenuAction) String() string {
	switch a {
	case ActionShowMenu:
		return "show_menu"
	case ActionShowInfo:
		return "show_info"
	case ActionShowAskPrompt:
		return "show_ask_prompt"
	case ActionClearHistory:
		return "clear_history"
	default:
		return "unknown"
	}
}
