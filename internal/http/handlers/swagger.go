package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>Portfolio API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPISpec = `openapi: 3.0.3
info:
  title: Portfolio API
  version: "1.0"
paths:
  /api/v1/register:
    post:
      summary: Register an admin user
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name, email, password]
              properties:
                name: {type: string}
                email: {type: string}
                password: {type: string}
      responses:
        "201": {description: User registered, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "400": {description: User already exists or invalid body, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "415": {$ref: "#/components/responses/UnsupportedMediaType"}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
  /api/v1/login:
    post:
      summary: Exchange email and password for a bearer token
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [email, password]
              properties:
                email: {type: string}
                password: {type: string}
      responses:
        "200": {description: Token issued, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "401":
          description: Invalid email or password
          content:
            application/json:
              schema:
                type: object
                properties:
                  message: {type: string}
        "400": {description: Invalid body, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "415": {$ref: "#/components/responses/UnsupportedMediaType"}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
  /api/v1/skills:
    get:
      summary: List skills
      responses:
        "200": {description: All skills, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "304": {description: Not modified}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
    post:
      summary: Add a skill
      requestBody: {required: true, content: {application/json: {schema: {type: object}}}}
      responses:
        "200": {description: Skill added, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "400": {description: Body is not a JSON object, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "415": {$ref: "#/components/responses/UnsupportedMediaType"}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
  /api/v1/projects:
    get:
      summary: List projects
      responses:
        "200": {description: All projects, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "304": {description: Not modified}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
    post:
      summary: Add a project
      requestBody: {required: true, content: {application/json: {schema: {type: object}}}}
      responses:
        "200": {description: Project added, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "400": {description: Body is not a JSON object, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
        "415": {$ref: "#/components/responses/UnsupportedMediaType"}
        "500": {description: Store failure, content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}}
components:
  responses:
    UnsupportedMediaType:
      description: Content-Type is not application/json
      content: {application/json: {schema: {$ref: "#/components/schemas/Envelope"}}}
  schemas:
    Envelope:
      type: object
      properties:
        success: {type: boolean}
        message: {type: string}
        data: {}
        token: {type: string}
        details: {}
        requestId: {type: string}
`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(openAPISpec))
}
