package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   []string
	}{
		{"empty", "", []string{}},
		{"short words dropped", "an app for me", []string{}},
		{"lower-cased and deduped", "Quick quick QUICK brown", []string{"quick", "brown"}},
		{"capped at five", "The quick brown fox jumps over the lazy dog quick", []string{"quick", "brown", "jumps", "over", "lazy"}},
		{"underscore is a word char", "hello_world app", []string{"hello_world"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.prompt)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	d := Detect("A FORUM with LOGIN and Calendar BOOKING")
	assert.True(t, d.Flags.Auth)
	assert.True(t, d.Flags.Calendar)
	assert.True(t, d.Types.Social)
	assert.False(t, d.Flags.Payment)
	assert.False(t, d.Types.Marketplace)
}

func TestBuildPlan_TaskManagement(t *testing.T) {
	plan := BuildPlan("Build a task management app")

	assert.Equal(t, "productivity tool", plan.AppType)
	assert.Contains(t, plan.Summary, "productivity tool")
	assert.Equal(t, "A build task productivity tool built on the Internet Computer", plan.Summary)
	assert.Equal(t, []string{
		"Home Page",
		"Browse/List Page",
		"Details Page",
		"Create/Edit Page",
		"About Page",
	}, plan.Pages)
	assert.Equal(t, []string{
		"CRUD operations for main entities",
		"Task status tracking",
		"Due date management",
	}, plan.Features)
	require.Len(t, plan.DataModel, 1)
	assert.Contains(t, plan.DataModel[0], "Task: {")
}

func TestBuildPlan_Marketplace(t *testing.T) {
	plan := BuildPlan("Create a marketplace for digital art")

	assert.Equal(t, "marketplace", plan.AppType)
	assert.Equal(t, []string{
		"Home Page",
		"Browse/List Page",
		"Details Page",
		"Create/Edit Page",
		"Checkout Page",
		"Payment Success Page",
		"Order History Page",
		"About Page",
	}, plan.Pages)
	assert.Contains(t, plan.Features, "Shopping cart functionality")
	assert.Contains(t, plan.Features, "Order management")
	require.Len(t, plan.DataModel, 2)
	assert.Contains(t, plan.DataModel[0], "Product: {")
	assert.Contains(t, plan.DataModel[1], "Order: {")
}

func TestBuildPlan_Empty(t *testing.T) {
	plan := BuildPlan("")

	assert.Equal(t, []string{"Home Page", "About Page"}, plan.Pages)
	assert.Equal(t, []string{FallbackFeature}, plan.Features)
	assert.Equal(t, []string{FallbackDataModel}, plan.DataModel)
	assert.Equal(t, "application", plan.AppType)
	assert.Equal(t, "A  application built on the Internet Computer", plan.Summary)
	assert.Len(t, plan.TechStack, 6)
	assert.Len(t, plan.Steps, 10)
}

func TestBuildPlan_CRUDPrecedesSocial(t *testing.T) {
	plan := BuildPlan("A data app where people share posts")

	crud := indexOf(plan.Features, "CRUD operations for main entities")
	social := indexOf(plan.Features, "Social interactions (likes, comments, shares)")
	require.NotEqual(t, -1, crud)
	require.NotEqual(t, -1, social)
	assert.Less(t, crud, social)

	// "post" selects the blog branch of the data block.
	assert.Equal(t, []string{
		"CRUD operations for main entities",
		"Rich text editor for content creation",
		"Tag-based organization",
		"Social interactions (likes, comments, shares)",
		"User following/followers system",
	}, plan.Features)
	assert.Contains(t, plan.DataModel[0], "Post: {")
	assert.Equal(t, "User Feed Page", plan.Pages[len(plan.Pages)-2])
}

func TestBuildPlan_MarketplaceBeatsBlogBranch(t *testing.T) {
	plan := BuildPlan("shop with blog")

	require.NotEmpty(t, plan.DataModel)
	assert.Contains(t, plan.DataModel[0], "Product: {")
	for _, m := range plan.DataModel {
		assert.NotContains(t, m, "Post: {")
	}
}

func TestBuildPlan_PortfolioLabel(t *testing.T) {
	plan := BuildPlan("Showcase my photography")

	assert.Equal(t, "portfolio website", plan.AppType)
	assert.Equal(t, []string{"Home Page", "About Page"}, plan.Pages)
	assert.Equal(t, []string{"File upload and storage", "Image optimization and preview"}, plan.Features)
	require.Len(t, plan.DataModel, 1)
	assert.Contains(t, plan.DataModel[0], "File: {")
}

func TestBuildPlan_PagesInvariants(t *testing.T) {
	prompts := []string{
		"",
		"x",
		"Build a task management app",
		"social marketplace with chat messages, calendar events, analytics dashboard, photo upload, search and user login",
		"forum forum forum",
	}
	for _, p := range prompts {
		plan := BuildPlan(p)
		require.NotEmpty(t, plan.Pages, p)
		assert.Equal(t, "Home Page", plan.Pages[0], p)
		assert.Equal(t, "About Page", plan.Pages[len(plan.Pages)-1], p)

		seen := map[string]bool{}
		for _, page := range plan.Pages {
			assert.False(t, seen[page], "duplicate page %q for %q", page, p)
			seen[page] = true
		}
	}
}

func TestBuildPlan_Everything(t *testing.T) {
	plan := BuildPlan("social marketplace with chat messages, calendar events, analytics dashboard, photo upload, search and user login")

	assert.Equal(t, "marketplace", plan.AppType)
	assert.Contains(t, plan.Pages, "Messages/Chat Page")
	assert.Contains(t, plan.Pages, "Calendar View")
	assert.Contains(t, plan.Pages, "Analytics Dashboard")
	assert.Contains(t, plan.Features, "Real-time notifications")
	assert.Contains(t, plan.Features, "Advanced search and filtering")

	// Data model keeps guard-block order and is not de-duplicated.
	prefixes := []string{"UserProfile:", "Product:", "Comment:", "Like:", "Order:", "File:", "Notification:", "Message:", "Event:"}
	require.Len(t, plan.DataModel, len(prefixes))
	for i, prefix := range prefixes {
		assert.Contains(t, plan.DataModel[i], prefix)
	}
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}
