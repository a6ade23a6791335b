package model

// MetadataRecord represents a single labeled meal-tray image in the
// metadata DynamoDB table, keyed by object key.
type MetadataRecord struct {
	ObjectKey    string     `dynamodbav:"objectKey" json:"objectKey"`
	Bucket       string     `dynamodbav:"bucket,omitempty" json:"bucket,omitempty"`
	Mealtime     string     `dynamodbav:"mealtime" json:"mealtime"`
	MealDate     string     `dynamodbav:"mealDate" json:"mealDate"`
	DiningHallID string     `dynamodbav:"diningHallId" json:"diningHallId"`
	Difficulty   Scalar     `dynamodbav:"difficulty" json:"difficulty"`
	Items        []LineItem `dynamodbav:"items" json:"items"`
	CreatedAt    string     `dynamodbav:"createdAt" json:"createdAt"`
}

// LineItem is one menu item on the tray with its estimated servings.
type LineItem struct {
	MenuItemID string `dynamodbav:"menuItemId" json:"menuItemId"`
	Servings   Number `dynamodbav:"servings" json:"servings"`
}
