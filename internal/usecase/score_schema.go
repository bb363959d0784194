package usecase

const scoreRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["candidate", "job"],
  "additionalProperties": false,
  "definitions": {
    "proficiency": {"type": "string", "enum": ["beginner", "intermediate", "advanced", "expert"]},
    "uuid": {"type": "string", "pattern": "^[0-9a-fA-F-]{36}$"}
  },
  "properties": {
    "candidate": {
      "type": "object",
      "required": ["years_experience", "skills"],
      "properties": {
        "id": {"$ref": "#/definitions/uuid"},
        "years_experience": {"type": "integer", "minimum": 0},
        "expected_salary": {"type": ["integer", "null"], "minimum": 0},
        "preferred_location": {"type": "string"},
        "skills": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "proficiency"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "proficiency": {"$ref": "#/definitions/proficiency"},
              "years": {"type": "integer", "minimum": 0}
            }
          }
        }
      }
    },
    "job": {
      "type": "object",
      "required": ["experience_level", "salary_min", "salary_max", "skills"],
      "properties": {
        "id": {"$ref": "#/definitions/uuid"},
        "experience_level": {"type": "string", "enum": ["entry", "junior", "mid", "senior", "lead"]},
        "salary_min": {"type": "integer", "minimum": 0},
        "salary_max": {"type": "integer", "minimum": 0},
        "skills": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "requirement", "min_proficiency", "weight"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "requirement": {"type": "string", "enum": ["required", "preferred"]},
              "min_proficiency": {"$ref": "#/definitions/proficiency"},
              "min_years": {"type": "integer", "minimum": 0},
              "weight": {"type": "integer", "minimum": 1, "maximum": 10}
            }
          }
        }
      }
    }
  }
}`
