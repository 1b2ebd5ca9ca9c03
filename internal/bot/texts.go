package bot

const welcomeText = "👋 <b>Welcome to UGMSA AI Assistant!</b>\n\n" +
	"🎓 Your personal guide to the University of Ghana Medical Students' Association\n\n" +
	"<b>How I Can Help:</b>\n" +
	"  ✓ UGMSA/FGMSA information & programs\n" +
	"  ✓ Events, meetings & important dates\n" +
	"  ✓ Membership & resources\n" +
	"  ✓ Academic support & advice\n\n" +
	"💡 <i>Choose an option below to get started</i>"

const menuText = "📋 <b>Main Menu</b>\n\n" +
	"What would you like to explore today?"

const infoText = "📚 <b>UGMSA/FGMSA Knowledge Base</b>\n\n" +
	"Ask me anything about the University of Ghana Medical Students' Association!\n\n" +
	"<b>📖 My Knowledge Sources:</b>\n" +
	"  ✓ Official UGMSA documents\n" +
	"  ✓ Live website data (ugmsa.org)\n" +
	"  ✓ Programs, events & activities\n" +
	"  ✓ Membership guidelines\n" +
	"  ✓ Leadership & contact info\n\n" +
	"💬 <i>Type your question below and I'll provide detailed answers</i>"

const askText = "💬 <b>Ask Me Anything!</b>\n\n" +
	"I'm here to help with:\n\n" +
	"<b>🎓 UGMSA Topics:</b>\n" +
	"  • Events & programs\n" +
	"  • Membership information\n" +
	"  • Leadership structure\n" +
	"  • Resources & opportunities\n\n" +
	"<b>📚 Academic Support:</b>\n" +
	"  • Study tips & guidance\n" +
	"  • Course information\n" +
	"  • Student life advice\n\n" +
	"🎯 <i>Just type your question below!</i>"

const clearedText = "✅ <b>Chat History Cleared!</b>\n\n" +
	"🔄 Your conversation has been reset.\n\n" +
	"Ready for a fresh start? Ask me anything!"

// apologyText is the only failure surface users ever see; raw errors stay
// in the logs.
const apologyText = "⚠️ <b>Oops! Something went wrong</b>\n\n" +
	"I encountered a temporary issue processing your request.\n\n" +
	"💡 <i>Please try again, or rephrase your question</i>"
