package chatbotController

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/techstore/storefront-api/models"
)

// Segment is one timed message part of a multi-part reply.
type Segment struct {
	Text string `json:"text"`
	Type string `json:"type"` // "info" or "question"
}

// Reply is the resolver's output. Single-text replies marshal "response" as a
// plain string; multi-part replies marshal it as a segment array, matching
// what the storefront widget renders.
type Reply struct {
	Text        string
	Segments    []Segment
	Buttons     []string
	ShouldClose bool
}

func (r Reply) MarshalJSON() ([]byte, error) {
	buttons := r.Buttons
	if buttons == nil {
		buttons = []string{}
	}

	payload := struct {
		Response    any      `json:"response"`
		Buttons     []string `json:"buttons"`
		ShouldClose bool     `json:"shouldClose,omitempty"`
	}{Buttons: buttons, ShouldClose: r.ShouldClose}

	if len(r.Segments) > 0 {
		payload.Response = r.Segments
	} else {
		payload.Response = r.Text
	}
	return json.Marshal(payload)
}

// FeaturedLookup supplies the products shown by the featured-products intent.
type FeaturedLookup func() ([]models.Product, error)

type resolveContext struct {
	message         string // lower-cased user input
	isAuthenticated bool
	featured        FeaturedLookup
}

// intent pairs a match predicate with its reply. Intents are evaluated in
// declaration order and the first match wins, so a message containing
// keywords from several topics always resolves to the highest-priority one.
type intent struct {
	name    string
	match   func(msg string) bool
	respond func(rc resolveContext) Reply
}

var greetingPattern = regexp.MustCompile(`^(hi|hello|hey|greetings)`)

func containsAny(msg string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

const followUpQuestion = "Anything else apart from this I can help you with?"

func yesNo() []string { return []string{"Yes", "No"} }

func topicMenu() []string {
	return []string{
		"Shipping & Delivery",
		"Warranty Details",
		"Payment Options",
		"Out of Stock Products",
		"Featured Products",
		"Track Order",
		"Bulk Orders",
	}
}

// infoWithFollowUp builds the standard two-segment reply: a policy text
// followed by the yes/no follow-up question.
func infoWithFollowUp(text string) Reply {
	return Reply{
		Segments: []Segment{
			{Text: text, Type: "info"},
			{Text: followUpQuestion, Type: "question"},
		},
		Buttons: yesNo(),
	}
}

var intents = []intent{
	{
		name: "closing",
		match: func(msg string) bool {
			return containsAny(msg, "no", "nope", "nothing else")
		},
		respond: func(rc resolveContext) Reply {
			return Reply{
				Segments: []Segment{
					{Text: "Thank you for contacting TechBot\nHave a nice day.", Type: "info"},
				},
				Buttons:     []string{},
				ShouldClose: true,
			}
		},
	},
	{
		name: "greeting",
		match: func(msg string) bool {
			return greetingPattern.MatchString(msg)
		},
		respond: func(rc resolveContext) Reply {
			return Reply{
				Text: "Hi! I'm TechBot, your virtual assistant for TechStore. How can I help you today? 😊\n\n" +
					"I can help you with:",
				Buttons: topicMenu(),
			}
		},
	},
	{
		name: "track_order",
		match: func(msg string) bool {
			return containsAny(msg, "track", "order status", "my order")
		},
		respond: func(rc resolveContext) Reply {
			if !rc.isAuthenticated {
				return Reply{Text: "Your session has expired.", Buttons: []string{}}
			}
			return Reply{
				Text: "To track your order, please visit the 'My Orders' section in your account.\n\n" +
					followUpQuestion,
				Buttons: yesNo(),
			}
		},
	},
	{
		name: "featured_products",
		match: func(msg string) bool {
			return containsAny(msg, "featured", "top", "best", "popular")
		},
		respond: featuredProductsReply,
	},
	{
		name: "shipping",
		match: func(msg string) bool {
			return containsAny(msg, "shipping", "delivery", "timeline", "when will i get")
		},
		respond: func(rc resolveContext) Reply {
			return infoWithFollowUp("Here's our shipping information:\n\n" +
				"• Standard shipping takes 2-5 business days to ship\n\n" +
				"• Shipping charge of ₹1000 will be added for orders below ₹1999\n\n" +
				"• Free delivery for orders above ₹1999\n\n" +
				"All orders are processed within 24 hours of confirmation.")
		},
	},
	{
		name: "stock",
		match: func(msg string) bool {
			return containsAny(msg, "stock", "available", "out of stock", "when will you have")
		},
		respond: func(rc resolveContext) Reply {
			return infoWithFollowUp("Dear Customer,\n\n" +
				"Greetings from TechBot!\n\n" +
				"• Generally, the out of stock product come in stock within 3-4 working weeks\n\n" +
				"• Still it depends on the supplier\n\n" +
				"• Meanwhile, please join the waitlist so that you will receive a notification\n\n" +
				"Have a nice day!")
		},
	},
	{
		name: "warranty",
		match: func(msg string) bool {
			return containsAny(msg, "warranty", "guarantee", "coverage", "protection",
				"faulty", "damaged", "missing", "different")
		},
		respond: warrantyReply,
	},
	{
		name: "payment",
		match: func(msg string) bool {
			return containsAny(msg, "payment", "pay", "credit card", "debit card",
				"upi", "cod", "emi", "cancel")
		},
		respond: func(rc resolveContext) Reply {
			return infoWithFollowUp("Dear Customer,\n\n" +
				"Greetings from TechBot!\n\n" +
				"Currently, we only accept Cash on Delivery (COD) as the payment method.\n\n" +
				"Important Notes:\n\n" +
				"• Cancellation cannot be done once the order is placed\n\n" +
				"• We wont be charging any extra amount for COD orders\n\n" +
				"Thank you for your understanding.")
		},
	},
	{
		name: "bulk_order",
		match: func(msg string) bool {
			return containsAny(msg, "bulk order", "quotation", "bulk", "wholesale")
		},
		respond: func(rc resolveContext) Reply {
			return infoWithFollowUp("Dear Customer,\n\n" +
				"We really appreciate you putting your trust in TechStore\n" +
				"For quotation and best pricing on bulk orders\n\n" +
				"Please click on the below link and raise a support ticket for further assistance-\n" +
				"Link - https://support/Tickets/Submit\n\n" +
				"Note - Once you raise a ticket for quotation then the sales team will get back to you within 24-48 working hours.")
		},
	},
}

func warrantyReply(rc resolveContext) Reply {
	// Faulty outranks the damaged/missing/different branch when both appear.
	if strings.Contains(rc.message, "faulty") {
		return infoWithFollowUp("Dear Customer,\n\n" +
			"Greetings from TechBot!\n\n" +
			"• If the received product is faulty then kindly raise a support ticket from our website to claim the warranty\n\n" +
			"• Each and every product has a different warranty. Please check the warranty details on the product page\n\n" +
			"• Minimum 15 days warranty is there on every product\n\n" +
			"• Make sure to contact us within warranty period of order delivery, else the return will not be possible\n\n" +
			"Have a nice day.")
	}
	if containsAny(rc.message, "damaged", "missing", "different") {
		return infoWithFollowUp("Dear Customer,\n\n" +
			"Greetings from TechBot!\n\n" +
			"• If the received product is Damaged/Different/Missing then kindly raise a support ticket from our website\n\n" +
			"• Make sure to contact us within 2 days from the order delivery date, else the return will not be possible\n\n" +
			"Have a nice day")
	}
	return Reply{
		Text:    "Please specify if your product is:",
		Buttons: []string{"Faulty", "Damaged/Different/Missing"},
	}
}

func featuredProductsReply(rc resolveContext) Reply {
	products, err := rc.featured()
	if err != nil {
		// Lookup faults never surface to the customer.
		return infoWithFollowUp("I apologize, but I'm having trouble fetching the featured products. Please try again later.")
	}
	if len(products) == 0 {
		return infoWithFollowUp("Currently, we don't have any featured products available.")
	}

	var b strings.Builder
	b.WriteString("Here are our featured products:\n\n")
	for _, p := range products {
		b.WriteString("• " + p.Name + " - ₹" + strconv.FormatFloat(p.Price, 'f', -1, 64) + "\n")
	}
	b.WriteString("\nThese products have received excellent ratings from our customers!")
	return infoWithFollowUp(b.String())
}

func defaultReply() Reply {
	return Reply{
		Text: "What can I help you with?\n\n" +
			"I can assist you with:",
		Buttons: topicMenu(),
	}
}

// Resolve maps one free-text message to a reply. The resolver is stateless:
// follow-up button selections are echoed back verbatim by the widget as the
// next message, which is how "No" lands in the closing intent.
func Resolve(message string, isAuthenticated bool, featured FeaturedLookup) Reply {
	rc := resolveContext{
		message:         strings.ToLower(message),
		isAuthenticated: isAuthenticated,
		featured:        featured,
	}
	for _, in := range intents {
		if in.match(rc.message) {
			return in.respond(rc)
		}
	}
	return defaultReply()
}
