package raw

// Status codes returned by OpenCL entry points. Success is zero; all
// failure codes are negative.
const (
	Success Int = 0

	ErrDeviceNotFound               Int = -1
	ErrDeviceNotAvailable           Int = -2
	ErrCompilerNotAvailable         Int = -3
	ErrMemObjectAllocationFailure   Int = -4
	ErrOutOfResources               Int = -5
	ErrOutOfHostMemory              Int = -6
	ErrProfilingInfoNotAvailable    Int = -7
	ErrMemCopyOverlap               Int = -8
	ErrImageFormatMismatch          Int = -9
	ErrImageFormatNotSupported      Int = -10
	ErrBuildProgramFailure          Int = -11
	ErrMapFailure                   Int = -12
	ErrMisalignedSubBufferOffset    Int = -13
	ErrExecStatusErrorForEvents     Int = -14
	ErrCompileProgramFailure        Int = -15
	ErrLinkerNotAvailable           Int = -16
	ErrLinkProgramFailure           Int = -17
	ErrDevicePartitionFailed        Int = -18
	ErrKernelArgInfoNotAvailable    Int = -19
	ErrInvalidValue                 Int = -30
	ErrInvalidDeviceType            Int = -31
	ErrInvalidPlatform              Int = -32
	ErrInvalidDevice                Int = -33
	ErrInvalidContext               Int = -34
	ErrInvalidQueueProperties       Int = -35
	ErrInvalidCommandQueue          Int = -36
	ErrInvalidHostPtr               Int = -37
	ErrInvalidMemObject             Int = -38
	ErrInvalidImageFormatDescriptor Int = -39
	ErrInvalidImageSize             Int = -40
	ErrInvalidSampler               Int = -41
	ErrInvalidBinary                Int = -42
	ErrInvalidBuildOptions          Int = -43
	ErrInvalidProgram               Int = -44
	ErrInvalidProgramExecutable     Int = -45
	ErrInvalidKernelName            Int = -46
	ErrInvalidKernelDefinition      Int = -47
	ErrInvalidKernel                Int = -48
	ErrInvalidArgIndex              Int = -49
	ErrInvalidArgValue              Int = -50
	ErrInvalidArgSize               Int = -51
	ErrInvalidKernelArgs            Int = -52
	ErrInvalidWorkDimension         Int = -53
	ErrInvalidWorkGroupSize         Int = -54
	ErrInvalidWorkItemSize          Int = -55
	ErrInvalidGlobalOffset          Int = -56
	ErrInvalidEventWaitList         Int = -57
	ErrInvalidEvent                 Int = -58
	ErrInvalidOperation             Int = -59
	ErrInvalidGLObject              Int = -60
	ErrInvalidBufferSize            Int = -61
	ErrInvalidMipLevel              Int = -62
	ErrInvalidGlobalWorkSize        Int = -63
	ErrInvalidProperty              Int = -64
	ErrInvalidImageDescriptor       Int = -65
	ErrInvalidCompilerOptions       Int = -66
	ErrInvalidLinkerOptions         Int = -67
	ErrInvalidDevicePartitionCount  Int = -68
	ErrInvalidPipeSize              Int = -69
	ErrInvalidDeviceQueue           Int = -70
	ErrInvalidSpecID                Int = -71
	ErrMaxSizeRestrictionExceeded   Int = -72
)

var errorNames = map[Int]string{
	Success:                         "CL_SUCCESS",
	ErrDeviceNotFound:               "CL_DEVICE_NOT_FOUND",
	ErrDeviceNotAvailable:           "CL_DEVICE_NOT_AVAILABLE",
	ErrCompilerNotAvailable:         "CL_COMPILER_NOT_AVAILABLE",
	ErrMemObjectAllocationFailure:   "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	ErrOutOfResources:               "CL_OUT_OF_RESOURCES",
	ErrOutOfHostMemory:              "CL_OUT_OF_HOST_MEMORY",
	ErrProfilingInfoNotAvailable:    "CL_PROFILING_INFO_NOT_AVAILABLE",
	ErrMemCopyOverlap:               "CL_MEM_COPY_OVERLAP",
	ErrImageFormatMismatch:          "CL_IMAGE_FORMAT_MISMATCH",
	ErrImageFormatNotSupported:      "CL_IMAGE_FORMAT_NOT_SUPPORTED",
	ErrBuildProgramFailure:          "CL_BUILD_PROGRAM_FAILURE",
	ErrMapFailure:                   "CL_MAP_FAILURE",
	ErrMisalignedSubBufferOffset:    "CL_MISALIGNED_SUB_BUFFER_OFFSET",
	ErrExecStatusErrorForEvents:     "CL_EXEC_STATUS_ERROR_FOR_EVENTS_IN_WAIT_LIST",
	ErrCompileProgramFailure:        "CL_COMPILE_PROGRAM_FAILURE",
	ErrLinkerNotAvailable:           "CL_LINKER_NOT_AVAILABLE",
	ErrLinkProgramFailure:           "CL_LINK_PROGRAM_FAILURE",
	ErrDevicePartitionFailed:        "CL_DEVICE_PARTITION_FAILED",
	ErrKernelArgInfoNotAvailable:    "CL_KERNEL_ARG_INFO_NOT_AVAILABLE",
	ErrInvalidValue:                 "CL_INVALID_VALUE",
	ErrInvalidDeviceType:            "CL_INVALID_DEVICE_TYPE",
	ErrInvalidPlatform:              "CL_INVALID_PLATFORM",
	ErrInvalidDevice:                "CL_INVALID_DEVICE",
	ErrInvalidContext:               "CL_INVALID_CONTEXT",
	ErrInvalidQueueProperties:       "CL_INVALID_QUEUE_PROPERTIES",
	ErrInvalidCommandQueue:          "CL_INVALID_COMMAND_QUEUE",
	ErrInvalidHostPtr:               "CL_INVALID_HOST_PTR",
	ErrInvalidMemObject:             "CL_INVALID_MEM_OBJECT",
	ErrInvalidImageFormatDescriptor: "CL_INVALID_IMAGE_FORMAT_DESCRIPTOR",
	ErrInvalidImageSize:             "CL_INVALID_IMAGE_SIZE",
	ErrInvalidSampler:               "CL_INVALID_SAMPLER",
	ErrInvalidBinary:                "CL_INVALID_BINARY",
	ErrInvalidBuildOptions:          "CL_INVALID_BUILD_OPTIONS",
	ErrInvalidProgram:               "CL_INVALID_PROGRAM",
	ErrInvalidProgramExecutable:     "CL_INVALID_PROGRAM_EXECUTABLE",
	ErrInvalidKernelName:            "CL_INVALID_KERNEL_NAME",
	ErrInvalidKernelDefinition:      "CL_INVALID_KERNEL_DEFINITION",
	ErrInvalidKernel:                "CL_INVALID_KERNEL",
	ErrInvalidArgIndex:              "CL_INVALID_ARG_INDEX",
	ErrInvalidArgValue:              "CL_INVALID_ARG_VALUE",
	ErrInvalidArgSize:               "CL_INVALID_ARG_SIZE",
	ErrInvalidKernelArgs:            "CL_INVALID_KERNEL_ARGS",
	ErrInvalidWorkDimension:         "CL_INVALID_WORK_DIMENSION",
	ErrInvalidWorkGroupSize:         "CL_INVALID_WORK_GROUP_SIZE",
	ErrInvalidWorkItemSize:          "CL_INVALID_WORK_ITEM_SIZE",
	ErrInvalidGlobalOffset:          "CL_INVALID_GLOBAL_OFFSET",
	ErrInvalidEventWaitList:         "CL_INVALID_EVENT_WAIT_LIST",
	ErrInvalidEvent:                 "CL_INVALID_EVENT",
	ErrInvalidOperation:             "CL_INVALID_OPERATION",
	ErrInvalidGLObject:              "CL_INVALID_GL_OBJECT",
	ErrInvalidBufferSize:            "CL_INVALID_BUFFER_SIZE",
	ErrInvalidMipLevel:              "CL_INVALID_MIP_LEVEL",
	ErrInvalidGlobalWorkSize:        "CL_INVALID_GLOBAL_WORK_SIZE",
	ErrInvalidProperty:              "CL_INVALID_PROPERTY",
	ErrInvalidImageDescriptor:       "CL_INVALID_IMAGE_DESCRIPTOR",
	ErrInvalidCompilerOptions:       "CL_INVALID_COMPILER_OPTIONS",
	ErrInvalidLinkerOptions:         "CL_INVALID_LINKER_OPTIONS",
	ErrInvalidDevicePartitionCount:  "CL_INVALID_DEVICE_PARTITION_COUNT",
	ErrInvalidPipeSize:              "CL_INVALID_PIPE_SIZE",
	ErrInvalidDeviceQueue:           "CL_INVALID_DEVICE_QUEUE",
	ErrInvalidSpecID:                "CL_INVALID_SPEC_ID",
	ErrMaxSizeRestrictionExceeded:   "CL_MAX_SIZE_RESTRICTION_EXCEEDED",
}

// ErrorName returns the symbolic name of an OpenCL status code. The
// second return is false for codes this package does not recognize, so
// codes introduced by newer drivers still round-trip as numbers.
func ErrorName(code Int) (string, bool) {
	name, ok := errorNames[code]
	return name, ok
}
