package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// RequestFile is the YAML document the generate command reads: a code
// definition plus the database it is generated from.
//
//	project_path: /work/shop
//	artifact_id: shop
//	base_package: com.acme.shop
//	table_list: [t_user_detail]
//	database:
//	  driver_class: com.mysql.cj.jdbc.Driver
//	  url: jdbc:mysql://localhost:3306/shop
//	  username: root
//	  password: ${DB_PASSWORD}
type RequestFile struct {
	models.CodeDefinitionRequest `yaml:",inline"`
	Database                     *models.DBDefinition `yaml:"database"`
}

// LoadRequest reads and validates a request file. ${VAR} references are
// expanded from the environment so passwords need not be stored in the file.
// A missing database section is not an error here; the run reports it.
func LoadRequest(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}

	var req RequestFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &req); err != nil {
		return nil, fmt.Errorf("parse request file %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request file %s: %w", path, err)
	}
	return &req, nil
}
