package openapi

import "maps"

// NewComponents creates Components with the shared error schema and the
// error responses every webhook operation can return.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":       ErrorResponse("Malformed payload, missing order id, or body too large"),
			"Unauthorized":     ErrorResponse("Missing or invalid webhook signature"),
			"MethodNotAllowed": ErrorResponse("Method not allowed"),
			"ServerError":      ErrorResponse("Unexpected failure or order update rejected upstream"),
		},
	}
}

// ErrorResponse creates a JSON response carrying the shared Error schema.
func ErrorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
