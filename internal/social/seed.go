// ABOUTME: First-run seed data: users, posts, stories, notes, and the default session.
// ABOUTME: Seeding writes only documents that are absent, so it is safe to repeat.
package social

import (
	"time"

	"github.com/2389-research/snapgram/internal/models"
)

// Seed is the initial content written by Services.Initialize.
type Seed struct {
	Users       []models.User
	Posts       []models.Post
	Stories     []models.Story
	Notes       []models.Note
	CurrentUser string
}

// DefaultSeed returns the built-in demo content.
func DefaultSeed() Seed {
	now := time.Now().UnixMilli()
	return Seed{
		Users: []models.User{
			{ID: "1", Username: "emma_creative", FullName: "Emma Rodriguez", Avatar: "assets/user1.jpg",
				Bio:       "✨ Creative soul | Travel enthusiast | Coffee addict ☕\n📍 Based in San Francisco",
				Followers: 12453, Following: 892, Posts: 147, Verified: true},
			{ID: "2", Username: "alex_photo", FullName: "Alex Thompson", Avatar: "assets/user2.jpg",
				Bio:       "📸 Urban photographer | Street style\n🌆 Capturing city moments\n👇 Latest work below",
				Followers: 8921, Following: 543, Posts: 89},
			{ID: "3", Username: "sophie_arts", FullName: "Sophie Anderson", Avatar: "assets/user3.jpg",
				Bio:       "🎨 Artist & Designer | Creating magic\n🌸 Nature lover | Boho vibes\n🔗 Shop: sophiearts.com",
				Followers: 15678, Following: 1203, Posts: 234, Verified: true},
			{ID: "4", Username: "mike_fitness", FullName: "Mike Johnson", Avatar: "assets/user1.jpg",
				Bio:       "💪 Fitness coach | Nutrition expert\n🏋️ Transforming lives through fitness\n📧 Contact: mike@fitcoach.com",
				Followers: 25340, Following: 678, Posts: 412, Verified: true},
			{ID: "5", Username: "sarah_food", FullName: "Sarah Williams", Avatar: "assets/user2.jpg",
				Bio:       "🍳 Food blogger | Recipe creator\n🌮 Sharing delicious recipes daily\n📍 NYC",
				Followers: 18920, Following: 1456, Posts: 523},
			{ID: "6", Username: "david_tech", FullName: "David Chen", Avatar: "assets/user3.jpg",
				Bio:       "💻 Software engineer | Tech enthusiast\n🚀 Building the future\n🔗 davidchen.dev",
				Followers: 9543, Following: 234, Posts: 156},
		},
		Posts: []models.Post{
			{ID: "1", OwnerID: "1", OwnerUsername: "emma_creative", OwnerAvatar: "assets/user1.jpg", Image: "assets/post1.jpg",
				Caption: "Chasing sunsets and good vibes 🌅 This moment was absolutely magical! #sunset #ocean #peaceful",
				Likes:   1243, Timestamp: "2 hours ago", Location: "Malibu Beach, CA",
				Comments: []models.Comment{
					{ID: "c1", AuthorID: "2", AuthorUsername: "alex_photo", Text: "Stunning capture! The colors are incredible 🔥", Timestamp: "1 hour ago"},
					{ID: "c2", AuthorID: "3", AuthorUsername: "sophie_arts", Text: "This is breathtaking! What camera did you use?", Timestamp: "45 minutes ago"},
				}},
			{ID: "2", OwnerID: "2", OwnerUsername: "alex_photo", OwnerAvatar: "assets/user2.jpg", Image: "assets/post2.jpg",
				Caption: "Breakfast goals 🍳🥑 Starting the day right with this beautiful spread. Recipe coming soon!",
				Likes:   892, Timestamp: "5 hours ago", Location: "Brooklyn, NY",
				Comments: []models.Comment{
					{ID: "c3", AuthorID: "1", AuthorUsername: "emma_creative", Text: "This looks amazing! Need this in my life right now 😍", Timestamp: "4 hours ago"},
				}},
			{ID: "3", OwnerID: "3", OwnerUsername: "sophie_arts", OwnerAvatar: "assets/user3.jpg", Image: "assets/post3.jpg",
				Caption: "Home is where the plants are 🌿 Loving this natural light in my new space. #interiordesign #plantlover",
				Likes:   2156, Timestamp: "1 day ago", Location: "Portland, OR",
				Comments: []models.Comment{
					{ID: "c4", AuthorID: "2", AuthorUsername: "alex_photo", Text: "Such a peaceful space! Love the minimalist vibe", Timestamp: "1 day ago"},
					{ID: "c5", AuthorID: "1", AuthorUsername: "emma_creative", Text: "Can I move in? 😄 This is exactly my aesthetic!", Timestamp: "23 hours ago"},
				}},
			{ID: "4", OwnerID: "2", OwnerUsername: "alex_photo", OwnerAvatar: "assets/user2.jpg", Image: "assets/post4.jpg",
				Caption: "City lights and late nights 🌃✨ Tokyo never disappoints. The energy here is unmatched!",
				Likes:   3421, Timestamp: "2 days ago", Location: "Shibuya, Tokyo",
				Comments: []models.Comment{
					{ID: "c6", AuthorID: "3", AuthorUsername: "sophie_arts", Text: "The bokeh effect is perfect! Amazing shot 📸", Timestamp: "2 days ago"},
				}},
			{ID: "5", OwnerID: "1", OwnerUsername: "emma_creative", OwnerAvatar: "assets/user1.jpg", Image: "assets/post5.jpg",
				Caption: "Meet Charlie! 🐶💛 The newest member of our family. He's already stolen our hearts!",
				Likes:   4532, Timestamp: "3 days ago",
				Comments: []models.Comment{
					{ID: "c7", AuthorID: "2", AuthorUsername: "alex_photo", Text: "Oh my goodness! What a cutie! 🥺", Timestamp: "3 days ago"},
					{ID: "c8", AuthorID: "3", AuthorUsername: "sophie_arts", Text: "ADORABLE! Welcome to the family, Charlie! 🐾", Timestamp: "3 days ago"},
				}},
			{ID: "6", OwnerID: "3", OwnerUsername: "sophie_arts", OwnerAvatar: "assets/user3.jpg", Image: "assets/post6.jpg",
				Caption: "Adventure awaits at every turn 🏔️ Hiking through these magnificent mountains reminded me how small we are in this vast world.",
				Likes:   2891, Timestamp: "4 days ago", Location: "Rocky Mountains, CO",
				Comments: []models.Comment{
					{ID: "c9", AuthorID: "1", AuthorUsername: "emma_creative", Text: "This view is absolutely incredible! Adding to my bucket list 📝", Timestamp: "4 days ago"},
				}},
		},
		Stories: []models.Story{
			{ID: "s1", OwnerID: "1", OwnerUsername: "emma_creative", OwnerAvatar: "assets/user1.jpg",
				Items: []models.StoryItem{
					{ID: "s1-1", Image: "assets/post1.jpg", Timestamp: "2 hours ago"},
					{ID: "s1-2", Image: "assets/post5.jpg", Timestamp: "3 hours ago"},
				}},
			{ID: "s2", OwnerID: "2", OwnerUsername: "alex_photo", OwnerAvatar: "assets/user2.jpg", Viewed: true,
				Items: []models.StoryItem{
					{ID: "s2-1", Image: "assets/post2.jpg", Timestamp: "5 hours ago"},
					{ID: "s2-2", Image: "assets/post4.jpg", Timestamp: "6 hours ago"},
				}},
			{ID: "s3", OwnerID: "3", OwnerUsername: "sophie_arts", OwnerAvatar: "assets/user3.jpg",
				Items: []models.StoryItem{
					{ID: "s3-1", Image: "assets/post3.jpg", Timestamp: "1 day ago"},
				}},
		},
		Notes: []models.Note{
			{ID: "1", Username: "john_photo", Avatar: "/placeholder.svg", Text: "Feeling creative today! 📸", Timestamp: now},
			{ID: "2", Username: "sarah_food", Avatar: "/placeholder.svg", Text: "Coffee time ☕", Timestamp: now},
			{ID: "3", Username: "mike_fitness", Avatar: "/placeholder.svg", Text: "Gym done! 💪", Timestamp: now},
		},
		CurrentUser: DefaultUsername,
	}
}
