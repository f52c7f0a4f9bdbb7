// Package constants defines shared constant values used across layers.
package constants

// Database table names.
const (
	TableProducts         = "products"
	TableFeatures         = "features"
	TableProductFeatures  = "product_features"
	TablePlans            = "plans"
	TablePlanFeatures     = "plan_features"
	TableBillingCycles    = "billing_cycles"
	TableCustomers        = "customers"
	TableSubscriptions    = "subscriptions"
	TableFeatureOverrides = "subscription_feature_overrides"
	TableSystemConfig     = "system_config"
)
