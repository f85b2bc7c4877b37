package templates

// GetGreetingReply is returned verbatim when the prompt is a bare greeting.
func GetGreetingReply() string {
	return `Hello! 👋 I'm your AI App Builder assistant. I can help you plan and structure your Internet Computer application.

To get started, describe your app idea. For example:
• "I want to build a task management app with user authentication"
• "Create a marketplace where users can buy and sell digital art"
• "Build a social platform for sharing recipes"

I'll analyze your requirements and provide a detailed implementation plan including pages, features, data models, and step-by-step guidance.

What would you like to build today?`
}

// GetHelpReply is returned verbatim when the prompt asks what the assistant does.
func GetHelpReply() string {
	return `# How I Can Help You Build Apps 🚀

I'm a deterministic app planning assistant that helps you structure Internet Computer applications. Here's what I do:

## What I Provide:
✅ **Structured App Plans** - Pages, features, and architecture
✅ **Data Model Suggestions** - Motoko type definitions
✅ **Implementation Steps** - Step-by-step development guide
✅ **Tech Stack Recommendations** - Best practices for IC development

## What I Detect:
🔐 Authentication needs
💾 Data storage requirements
🛒 E-commerce features
💬 Social interactions
📊 Analytics and dashboards
📅 Calendar and scheduling
🔍 Search and filtering

## How to Use:
Simply describe your app idea in natural language. Be specific about:
- What the app should do
- Who will use it
- Key features you need
- Any special requirements

**Example:** "I want to build a blog platform where users can write articles, add tags, and comment on posts"

Ready to start? Describe your app idea!`
}

// Plan report sections that never depend on the prompt.

const PlanOverview = "Based on your description, here's a comprehensive plan for building your application on the Internet Computer."

const PlanClosing = "**Need more details about any specific part?** Feel free to ask follow-up questions!"

func TechStack() []string {
	return []string{
		"Frontend: React 19 + TypeScript",
		"Styling: Tailwind CSS + shadcn/ui components",
		"Backend: Motoko on Internet Computer",
		"State Management: React Query + Zustand",
		"Routing: TanStack Router",
		"Authentication: Internet Identity",
	}
}

func ImplementationSteps() []string {
	return []string{
		"🏗️ Set up project structure with React + TypeScript frontend",
		"⚙️ Design and implement Motoko backend canister with data types",
		"💾 Create data models and storage logic (stable variables for persistence)",
		"🎨 Build UI components with Tailwind CSS and shadcn/ui",
		"🔐 Implement authentication with Internet Identity (if needed)",
		"🔄 Add CRUD operations and business logic",
		"🧪 Test functionality, edge cases, and error handling",
		"🚀 Deploy to Internet Computer network",
		"📊 Monitor performance and gather user feedback",
		"🔧 Iterate and add new features based on feedback",
	}
}

func NextSteps() []string {
	return []string{
		"**Review & Refine** - Adjust this plan based on your specific needs",
		"**Start with Backend** - Define your Motoko data structures first",
		"**Build Incrementally** - Implement one feature at a time",
		"**Test Thoroughly** - Test each feature before moving to the next",
		"**Deploy & Iterate** - Deploy early and gather feedback",
	}
}

func ProTips() []string {
	return []string{
		"Use stable variables in Motoko for data persistence across upgrades",
		"Implement proper error handling with Result types",
		"Keep your canister methods focused and single-purpose",
		"Use React Query for efficient data fetching and caching",
		"Follow the principle of least privilege for access control",
	}
}
