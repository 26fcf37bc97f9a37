package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/vietdv277/amirotate/pkg/provider"
)

// GetParameter returns the value of an SSM parameter, such as the public
// /aws/service/ami-amazon-linux-latest/* image parameters
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	output, err := c.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", provider.NotFound("GetParameter", name, "parameter %q not found", name)
		}
		return "", providerError("GetParameter", name, err)
	}

	if output.Parameter == nil || aws.ToString(output.Parameter.Value) == "" {
		return "", provider.NotFound("GetParameter", name, "parameter %q has no value", name)
	}

	return aws.ToString(output.Parameter.Value), nil
}
