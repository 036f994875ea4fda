package metadomain

// SemanticAction é um conceito de conversão normalizado. Cada um pode
// aparecer na API sob vários action_type acumulados historicamente.
type SemanticAction string

const (
	ActionPurchase         SemanticAction = "purchase"
	ActionLead             SemanticAction = "lead"
	ActionRegistration     SemanticAction = "complete_registration"
	ActionConversation     SemanticAction = "messaging_conversation"
	ActionAppInstall       SemanticAction = "app_install"
	ActionAddToCart        SemanticAction = "add_to_cart"
	ActionInitiateCheckout SemanticAction = "initiate_checkout"
	ActionAddPaymentInfo   SemanticAction = "add_payment_info"
	ActionLandingPageView  SemanticAction = "landing_page_view"
	ActionViewContent      SemanticAction = "view_content"
	ActionLinkClick        SemanticAction = "link_click"
	ActionOutboundClick    SemanticAction = "outbound_click"
	ActionPageEngagement   SemanticAction = "page_engagement"
	ActionPostEngagement   SemanticAction = "post_engagement"
	ActionPageLike         SemanticAction = "page_like"
	ActionPostReaction     SemanticAction = "post_reaction"
	ActionPostSave         SemanticAction = "post_save"
	ActionComment          SemanticAction = "comment"
	ActionShare            SemanticAction = "share"
	ActionVideoView        SemanticAction = "video_view"
	ActionThruPlay         SemanticAction = "thru_play"
	ActionSubscribe        SemanticAction = "subscribe"
	ActionContact          SemanticAction = "contact"
	ActionSchedule         SemanticAction = "schedule"
	ActionStartTrial       SemanticAction = "start_trial"
	ActionSubmitApp        SemanticAction = "submit_application"
	ActionSearch           SemanticAction = "search"
	ActionAddToWishlist    SemanticAction = "add_to_wishlist"
	ActionDonate           SemanticAction = "donate"
	ActionFindLocation     SemanticAction = "find_location"
)

// ActionSynonyms mapeia cada ação semântica para os action_type conhecidos,
// em ordem de prioridade: o primeiro valor > 0 encontrado vence.
var ActionSynonyms = map[SemanticAction][]string{
	ActionPurchase: {
		"purchase",
		"omni_purchase",
		"offsite_conversion.fb_pixel_purchase",
		"onsite_web_purchase",
	},
	ActionLead: {
		"lead",
		"onsite_conversion.lead_grouped",
		"offsite_conversion.fb_pixel_lead",
		"leadgen_grouped",
	},
	ActionRegistration: {
		"complete_registration",
		"omni_complete_registration",
		"offsite_conversion.fb_pixel_complete_registration",
	},
	ActionConversation: {
		"onsite_conversion.messaging_conversation_started_7d",
		"onsite_conversion.total_messaging_connection",
		"onsite_conversion.messaging_first_reply",
	},
	ActionAppInstall: {
		"mobile_app_install",
		"omni_app_install",
		"app_install",
	},
	ActionAddToCart: {
		"add_to_cart",
		"omni_add_to_cart",
		"offsite_conversion.fb_pixel_add_to_cart",
		"onsite_web_add_to_cart",
	},
	ActionInitiateCheckout: {
		"initiate_checkout",
		"omni_initiated_checkout",
		"offsite_conversion.fb_pixel_initiate_checkout",
	},
	ActionAddPaymentInfo: {
		"add_payment_info",
		"offsite_conversion.fb_pixel_add_payment_info",
	},
	ActionLandingPageView: {
		"landing_page_view",
		"omni_landing_page_view",
	},
	ActionViewContent: {
		"view_content",
		"omni_view_content",
		"offsite_conversion.fb_pixel_view_content",
	},
	ActionLinkClick:     {"link_click"},
	ActionOutboundClick: {"outbound_click"},
	ActionPageEngagement: {
		"page_engagement",
	},
	ActionPostEngagement: {
		"post_engagement",
	},
	ActionPageLike:     {"like", "page_like"},
	ActionPostReaction: {"post_reaction"},
	ActionPostSave:     {"onsite_conversion.post_save"},
	ActionComment:      {"comment"},
	ActionShare:        {"post", "share"},
	ActionVideoView:    {"video_view"},
	ActionThruPlay:     {"video_thruplay_watched_actions", "thruplay"},
	ActionSubscribe: {
		"subscribe",
		"offsite_conversion.fb_pixel_subscribe",
	},
	ActionContact: {
		"contact",
		"offsite_conversion.fb_pixel_contact",
	},
	ActionSchedule: {
		"schedule",
		"offsite_conversion.fb_pixel_schedule",
	},
	ActionStartTrial: {
		"start_trial",
		"offsite_conversion.fb_pixel_start_trial",
	},
	ActionSubmitApp: {
		"submit_application",
		"offsite_conversion.fb_pixel_submit_application",
	},
	ActionSearch: {
		"search",
		"offsite_conversion.fb_pixel_search",
	},
	ActionAddToWishlist: {
		"add_to_wishlist",
		"offsite_conversion.fb_pixel_add_to_wishlist",
	},
	ActionDonate: {
		"donate",
		"offsite_conversion.fb_pixel_donate",
	},
	ActionFindLocation: {
		"find_location",
		"offsite_conversion.fb_pixel_find_location",
	},
}

// OptimizationGoalToAction mapeia o optimization goal do adset para a ação
// semântica que define o "resultado" do anúncio.
var OptimizationGoalToAction = map[string]SemanticAction{
	"OFFSITE_CONVERSIONS":            ActionPurchase,
	"VALUE":                          ActionPurchase,
	"PURCHASE":                       ActionPurchase,
	"LEAD_GENERATION":                ActionLead,
	"QUALITY_LEAD":                   ActionLead,
	"COMPLETE_REGISTRATION":          ActionRegistration,
	"CONVERSATIONS":                  ActionConversation,
	"REPLIES":                        ActionConversation,
	"APP_INSTALLS":                   ActionAppInstall,
	"APP_INSTALLS_AND_OFFSITE_CONVERSIONS": ActionAppInstall,
	"LANDING_PAGE_VIEWS":             ActionLandingPageView,
	"LINK_CLICKS":                    ActionLinkClick,
	"THRUPLAY":                       ActionThruPlay,
	"TWO_SECOND_CONTINUOUS_VIDEO_VIEWS": ActionVideoView,
	"PAGE_LIKES":                     ActionPageLike,
	"POST_ENGAGEMENT":                ActionPostEngagement,
	"SUBSCRIBERS":                    ActionSubscribe,
	"VISIT_INSTAGRAM_PROFILE":        ActionPageEngagement,
	// REACH, IMPRESSIONS e AD_RECALL_LIFT não têm conversão associada:
	// caem na hierarquia de fallback.
}

// ResultFallbackOrder é a hierarquia de valor de negócio usada quando o
// optimization goal é desconhecido ou não tem valor > 0 na linha.
var ResultFallbackOrder = []SemanticAction{
	ActionPurchase,
	ActionLead,
	ActionRegistration,
	ActionConversation,
	ActionAppInstall,
	ActionAddToCart,
	ActionInitiateCheckout,
	ActionLandingPageView,
	ActionViewContent,
	ActionContact,
	ActionSubscribe,
	ActionLinkClick,
	ActionPostEngagement,
	ActionVideoView,
}
