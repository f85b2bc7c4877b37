package builder

import (
	"regexp"
	"strings"

	"sidehustle_server/internal/builder/templates"
	"sidehustle_server/internal/builder/utils"
)

// Fallbacks used when no guard block contributed anything.
const (
	FallbackFeature   = "Core functionality based on your requirements"
	FallbackDataModel = "Define data structures based on your needs"
)

const maxKeywords = 5

var keywordPattern = regexp.MustCompile(`\b\w{4,}\b`)

var (
	authPattern          = regexp.MustCompile(`(?i)login|auth|user|account|profile|sign`)
	dataPattern          = regexp.MustCompile(`(?i)data|store|save|database|list|manage|crud`)
	socialPattern        = regexp.MustCompile(`(?i)social|share|comment|like|follow|post|feed`)
	paymentPattern       = regexp.MustCompile(`(?i)payment|pay|buy|purchase|checkout|shop|cart`)
	searchPattern        = regexp.MustCompile(`(?i)search|filter|find|query`)
	uploadPattern        = regexp.MustCompile(`(?i)upload|image|file|photo|media`)
	notificationsPattern = regexp.MustCompile(`(?i)notif|alert|remind|message`)
	analyticsPattern     = regexp.MustCompile(`(?i)analytic|dashboard|report|stat|metric`)
	chatPattern          = regexp.MustCompile(`(?i)chat|message|conversation|dm`)
	calendarPattern      = regexp.MustCompile(`(?i)calendar|schedule|event|appointment|booking`)

	marketplaceTypePattern  = regexp.MustCompile(`(?i)marketplace|buy|sell|shop|store|ecommerce`)
	socialTypePattern       = regexp.MustCompile(`(?i)social|network|community|forum`)
	productivityTypePattern = regexp.MustCompile(`(?i)task|todo|project|manage|organize`)
	blogTypePattern         = regexp.MustCompile(`(?i)blog|article|post|content|publish`)
	portfolioTypePattern    = regexp.MustCompile(`(?i)portfolio|showcase|work|project`)
)

// Flags records which feature areas a prompt mentions.
type Flags struct {
	Auth          bool `json:"auth"`
	Data          bool `json:"data"`
	Social        bool `json:"social"`
	Payment       bool `json:"payment"`
	Search        bool `json:"search"`
	Upload        bool `json:"upload"`
	Notifications bool `json:"notifications"`
	Analytics     bool `json:"analytics"`
	Chat          bool `json:"chat"`
	Calendar      bool `json:"calendar"`
}

// AppTypes records which kinds of application a prompt resembles.
// More than one may be set; the label priority is applied in Label.
type AppTypes struct {
	Marketplace  bool `json:"marketplace"`
	Social       bool `json:"social"`
	Productivity bool `json:"productivity"`
	Blog         bool `json:"blog"`
	Portfolio    bool `json:"portfolio"`
}

// Label picks the summary wording for the detected app type.
func (t AppTypes) Label() string {
	switch {
	case t.Marketplace:
		return "marketplace"
	case t.Social:
		return "social platform"
	case t.Productivity:
		return "productivity tool"
	case t.Blog:
		return "blogging platform"
	case t.Portfolio:
		return "portfolio website"
	default:
		return "application"
	}
}

// Detection is the outcome of running every pattern against a prompt.
type Detection struct {
	Keywords []string `json:"keywords"`
	Flags    Flags    `json:"flags"`
	Types    AppTypes `json:"appTypes"`
}

// AppPlan is the structured plan rendered into the Markdown reply.
type AppPlan struct {
	Summary   string   `json:"summary"`
	AppType   string   `json:"appType"`
	Pages     []string `json:"pages"`
	Features  []string `json:"features"`
	DataModel []string `json:"dataModel"`
	TechStack []string `json:"techStack"`
	Steps     []string `json:"steps"`
}

// ExtractKeywords returns up to five distinct words of four or more
// characters from the prompt, in the order they first appear.
func ExtractKeywords(prompt string) []string {
	words := keywordPattern.FindAllString(strings.ToLower(prompt), -1)
	keywords := utils.DedupeStrings(words)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// Detect evaluates the keyword, feature and app-type patterns.
func Detect(prompt string) Detection {
	return Detection{
		Keywords: ExtractKeywords(prompt),
		Flags: Flags{
			Auth:          authPattern.MatchString(prompt),
			Data:          dataPattern.MatchString(prompt),
			Social:        socialPattern.MatchString(prompt),
			Payment:       paymentPattern.MatchString(prompt),
			Search:        searchPattern.MatchString(prompt),
			Upload:        uploadPattern.MatchString(prompt),
			Notifications: notificationsPattern.MatchString(prompt),
			Analytics:     analyticsPattern.MatchString(prompt),
			Chat:          chatPattern.MatchString(prompt),
			Calendar:      calendarPattern.MatchString(prompt),
		},
		Types: AppTypes{
			Marketplace:  marketplaceTypePattern.MatchString(prompt),
			Social:       socialTypePattern.MatchString(prompt),
			Productivity: productivityTypePattern.MatchString(prompt),
			Blog:         blogTypePattern.MatchString(prompt),
			Portfolio:    portfolioTypePattern.MatchString(prompt),
		},
	}
}

// BuildPlan assembles the AppPlan for a prompt. The guard blocks run in a
// fixed order and de-duplication keeps the first occurrence, so the order
// here is what the reader sees.
func BuildPlan(prompt string) AppPlan {
	d := Detect(prompt)
	f, t := d.Flags, d.Types

	pages := []string{"Home Page"}
	var features, dataModel []string

	if f.Auth {
		pages = append(pages, "Login/Signup Page", "User Profile Page", "Settings Page")
		features = append(features,
			"User authentication with Internet Identity",
			"User profile management",
		)
		dataModel = append(dataModel, "UserProfile: { name: Text, createdAt: Time }")
	}

	if f.Data || t.Marketplace || t.Social || t.Productivity || t.Blog {
		pages = append(pages, "Browse/List Page", "Details Page", "Create/Edit Page")
		features = append(features, "CRUD operations for main entities")

		switch {
		case t.Marketplace:
			dataModel = append(dataModel, "Product: { id: Nat, title: Text, description: Text, price: Nat, seller: Principal, images: [Blob], createdAt: Time }")
			features = append(features, "Product listing and management", "Search and filter products")
		case t.Blog:
			dataModel = append(dataModel, "Post: { id: Nat, title: Text, content: Text, author: Principal, tags: [Text], createdAt: Time }")
			features = append(features, "Rich text editor for content creation", "Tag-based organization")
		case t.Productivity:
			dataModel = append(dataModel, "Task: { id: Nat, title: Text, description: Text, status: Status, owner: Principal, dueDate: ?Time, createdAt: Time }")
			features = append(features, "Task status tracking", "Due date management")
		default:
			dataModel = append(dataModel, "Item: { id: Nat, title: Text, description: Text, owner: Principal, createdAt: Time }")
		}
	}

	if f.Social || t.Social {
		features = append(features,
			"Social interactions (likes, comments, shares)",
			"User following/followers system",
		)
		dataModel = append(dataModel,
			"Comment: { id: Nat, content: Text, author: Principal, itemId: Nat, timestamp: Time }",
			"Like: { user: Principal, itemId: Nat, timestamp: Time }",
		)
		pages = append(pages, "User Feed Page")
	}

	if f.Payment || t.Marketplace {
		pages = append(pages, "Checkout Page", "Payment Success Page", "Order History Page")
		features = append(features, "Shopping cart functionality", "Order management")
		dataModel = append(dataModel, "Order: { id: Nat, buyer: Principal, items: [OrderItem], total: Nat, status: OrderStatus, createdAt: Time }")
	}

	if f.Search {
		features = append(features, "Advanced search and filtering", "Sort by multiple criteria")
	}

	if f.Upload {
		features = append(features, "File upload and storage", "Image optimization and preview")
		dataModel = append(dataModel, "File: { id: Nat, name: Text, data: Blob, mimeType: Text, owner: Principal, uploadedAt: Time }")
	}

	if f.Notifications {
		features = append(features, "Real-time notifications", "Notification preferences")
		dataModel = append(dataModel, "Notification: { id: Nat, user: Principal, message: Text, read: Bool, createdAt: Time }")
	}

	if f.Analytics {
		pages = append(pages, "Analytics Dashboard")
		features = append(features, "Data visualization and charts", "Export reports")
	}

	if f.Chat {
		pages = append(pages, "Messages/Chat Page")
		features = append(features, "Real-time messaging", "Conversation history")
		dataModel = append(dataModel, "Message: { id: Nat, sender: Principal, recipient: Principal, content: Text, timestamp: Time }")
	}

	if f.Calendar {
		pages = append(pages, "Calendar View")
		features = append(features, "Event scheduling", "Calendar integration")
		dataModel = append(dataModel, "Event: { id: Nat, title: Text, description: Text, startTime: Time, endTime: Time, organizer: Principal, attendees: [Principal] }")
	}

	pages = append(pages, "About Page")

	features = utils.DedupeStrings(features)
	if len(features) == 0 {
		features = []string{FallbackFeature}
	}
	if len(dataModel) == 0 {
		dataModel = []string{FallbackDataModel}
	}

	appType := t.Label()
	lead := d.Keywords
	if len(lead) > 2 {
		lead = lead[:2]
	}

	return AppPlan{
		Summary:   "A " + strings.Join(lead, " ") + " " + appType + " built on the Internet Computer",
		AppType:   appType,
		Pages:     utils.DedupeStrings(pages),
		Features:  features,
		DataModel: dataModel,
		TechStack: templates.TechStack(),
		Steps:     templates.ImplementationSteps(),
	}
}
