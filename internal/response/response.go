// Package response renders API gateway proxy responses with the CORS
// policy every endpoint shares.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/menumatch/labeler/internal/model"
)

// Builder renders the uniform response envelope for one endpoint. The CORS
// header set is fixed at construction; every response carries it.
type Builder struct {
	allowHeaders string
	allowMethods string
}

// NewBuilder returns a Builder advertising the given allowed headers and
// methods.
func NewBuilder(allowHeaders, allowMethods string) Builder {
	return Builder{allowHeaders: allowHeaders, allowMethods: allowMethods}
}

func (b Builder) corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": b.allowHeaders,
		"Access-Control-Allow-Methods": b.allowMethods,
	}
}

// JSON renders payload as the JSON body of a response with the given
// status.
func (b Builder) JSON(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    b.corsHeaders(),
			Body:       `{"message":"Internal error."}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    b.corsHeaders(),
		Body:       string(body),
	}
}

// Message renders a {"message": ...} body.
func (b Builder) Message(status int, message string) events.APIGatewayProxyResponse {
	return b.JSON(status, model.MessageResponse{Message: message})
}

// NoContent is the CORS preflight short-circuit: 204 with an empty body.
func (b Builder) NoContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    b.corsHeaders(),
		Body:       "",
	}
}
